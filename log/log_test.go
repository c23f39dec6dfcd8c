// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithContextFollowsRoot(t *testing.T) {
	logger := WithContext("pkg", "test")

	var buf bytes.Buffer
	SetDefault(NewHandler(&buf, 3, true))
	defer SetDefault(NewHandler(&bytes.Buffer{}, 3, false))

	logger.With("id", 7).Info("hello", "k", "v")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "test", rec["pkg"])
	assert.Equal(t, "v", rec["k"])
	assert.Equal(t, float64(7), rec["id"])
}

func TestVerbosityFilter(t *testing.T) {
	var buf bytes.Buffer
	SetDefault(NewHandler(&buf, 2, false))
	defer SetDefault(NewHandler(&bytes.Buffer{}, 3, false))

	logger := WithContext("pkg", "test")
	logger.Info("dropped")
	logger.Warn("kept")

	assert.False(t, logger.Enabled(LevelInfo))
	assert.False(t, strings.Contains(buf.String(), "dropped"))
	assert.True(t, strings.Contains(buf.String(), "kept"))
}
