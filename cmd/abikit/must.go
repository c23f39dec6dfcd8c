// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/elastic/gosigar"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/fdlimit"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/abikit/artifact"
	"github.com/vechain/abikit/contract"
	"github.com/vechain/abikit/log"
	"github.com/vechain/abikit/options"
	"github.com/vechain/abikit/registry"
)

func fatal(args ...any) {
	var w io.Writer
	if runtime.GOOS == "windows" {
		// The SameFile check below doesn't work on Windows.
		// stdout is unlikely to get redirected though, so just print there.
		w = os.Stdout
	} else {
		outf, _ := os.Stdout.Stat()
		errf, _ := os.Stderr.Stat()
		if outf != nil && errf != nil && os.SameFile(outf, errf) {
			w = os.Stderr
		} else {
			w = io.MultiWriter(os.Stdout, os.Stderr)
		}
	}
	fmt.Fprint(w, "Fatal: ")
	fmt.Fprintln(w, args...)
	os.Exit(1)
}

func initLogger(ctx *cli.Context) {
	log.SetDefault(log.NewHandler(os.Stderr, ctx.GlobalInt(verbosityFlag.Name), ctx.GlobalBool(jsonLogsFlag.Name)))
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		switch runtime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library", "Application Support", "org.vechain.abikit")
		case "windows":
			return filepath.Join(home, "AppData", "Roaming", "org.vechain.abikit")
		default:
			return filepath.Join(home, ".org.vechain.abikit")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

func makeDataDir(ctx *cli.Context) (string, error) {
	dataDir := ctx.GlobalString(dataDirFlag.Name)
	if dataDir == "" {
		return "", fmt.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return "", errors.Wrapf(err, "create data dir [%v]", dataDir)
	}
	return dataDir, nil
}

func openRegistry(ctx *cli.Context) (*registry.Registry, error) {
	dataDir, err := makeDataDir(ctx)
	if err != nil {
		return nil, err
	}
	cacheMB := normalizeCacheSize(ctx.GlobalInt(cacheFlag.Name))
	logger.Debug("cache size(MB)", "size", cacheMB)

	fdCache := suggestFDCache()
	logger.Debug("fd cache", "n", fdCache)

	dir := filepath.Join(dataDir, "registry.db")
	reg, err := registry.Open(dir, registry.Options{
		CacheSize:              cacheMB,
		OpenFilesCacheCapacity: fdCache,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open registry [%v]", dir)
	}
	return reg, nil
}

func normalizeCacheSize(sizeMB int) int {
	if sizeMB < 8 {
		sizeMB = 8
	}

	var mem gosigar.Mem
	if err := mem.Get(); err != nil {
		logger.Warn("failed to get total mem:", "err", err)
	} else {
		// limit to 1/4 os physical ram
		limitMB := int(mem.Total / 1024 / 1024 / 4)
		if sizeMB > limitMB {
			sizeMB = limitMB
			logger.Warn("cache size(MB) limited", "limit", limitMB)
		}
	}
	return sizeMB
}

func suggestFDCache() int {
	limit, err := fdlimit.Current()
	if err != nil {
		logger.Warn("failed to get fd limit", "err", err)
		return 64
	}
	if limit <= 1024 {
		logger.Debug("low fd limit", "limit", limit)
	}

	n := limit / 4
	if n > 500 {
		return 500
	}
	return n
}

// newClient builds the chain context from the chain id flag and the options
// file. A chain id in the options file is used when the flag is absent.
func newClient(ctx *cli.Context) (contract.Client, error) {
	var opts *options.Options
	if path := ctx.GlobalString(optionsFlag.Name); path != "" {
		var err error
		if opts, err = options.Load(path); err != nil {
			return nil, err
		}
	}

	var chainID *big.Int
	if s := ctx.GlobalString(chainIDFlag.Name); s != "" {
		id, err := options.ParseQuantity(s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", chainIDFlag.Name, err)
		}
		chainID = id
	} else if opts != nil && opts.ChainID != nil {
		chainID = opts.ChainID
	}
	return contract.NewClient(chainID, opts), nil
}

// target is the contract a command works on.
type target struct {
	name     string
	contract *contract.Contract
	bytecode []byte
}

// loadTarget resolves the contract from an ABI file or the registry.
func loadTarget(ctx *cli.Context) (*target, error) {
	client, err := newClient(ctx)
	if err != nil {
		return nil, err
	}

	var address *common.Address
	if s := ctx.String(addressFlag.Name); s != "" {
		if !common.IsHexAddress(s) {
			return nil, fmt.Errorf("%s: invalid address %q", addressFlag.Name, s)
		}
		addr := common.HexToAddress(s)
		address = &addr
	}

	var t target
	switch file, name := ctx.String(abiFlag.Name), ctx.String(contractFlag.Name); {
	case file != "" && name != "":
		return nil, fmt.Errorf("-%s and -%s are exclusive", abiFlag.Name, contractFlag.Name)
	case file != "":
		a, err := artifact.Load(file)
		if err != nil {
			return nil, err
		}
		if t.contract, err = contract.New(client, a.ABI, address, nil); err != nil {
			return nil, err
		}
		t.name, t.bytecode = a.Name, a.Bytecode
	case name != "":
		reg, err := openRegistry(ctx)
		if err != nil {
			return nil, err
		}
		defer reg.Close()

		entry, err := reg.Get(name)
		if err != nil {
			if registry.IsNotFound(err) {
				return nil, fmt.Errorf("contract %s not registered", name)
			}
			return nil, err
		}
		if address != nil {
			entry.Address = address
		}
		if t.contract, err = entry.Contract(client, nil); err != nil {
			return nil, err
		}
		t.name, t.bytecode = entry.Name, entry.Bytecode
	default:
		return nil, fmt.Errorf("one of -%s or -%s is required", abiFlag.Name, contractFlag.Name)
	}

	if s := ctx.String(bytecodeFlag.Name); s != "" {
		code, err := hexutil.Decode(s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", bytecodeFlag.Name, err)
		}
		t.bytecode = code
	}
	return &t, nil
}

func decodeHexFlag(ctx *cli.Context, flag cli.StringFlag) ([]byte, error) {
	s := ctx.String(flag.Name)
	if s == "" {
		return nil, nil
	}
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", flag.Name, err)
	}
	return b, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}
