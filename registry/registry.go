// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package registry persists named contract definitions: ABI text, address
// and creation code.
package registry

import (
	"bytes"
	"fmt"
	"regexp"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/vechain/abikit/abi"
	"github.com/vechain/abikit/contract"
	"github.com/vechain/abikit/log"
	"github.com/vechain/abikit/options"
)

var (
	logger = log.WithContext("pkg", "registry")

	entryPrefix = []byte("c/")
	namePattern = regexp.MustCompile(`^[A-Za-z0-9_.\-]{1,64}$`)
)

// Entry is a named contract definition.
type Entry struct {
	Name     string
	ABI      []byte
	Address  *common.Address `rlp:"nil"`
	Bytecode []byte
	Created  uint64
}

// Validate checks the name and that the ABI parses.
func (e *Entry) Validate() error {
	if !namePattern.MatchString(e.Name) {
		return fmt.Errorf("invalid contract name %q", e.Name)
	}
	if _, err := abi.Parse(e.ABI); err != nil {
		return err
	}
	return nil
}

// Contract creates a contract from this entry.
func (e *Entry) Contract(client contract.Client, opts *options.Options) (*contract.Contract, error) {
	return contract.New(client, e.ABI, e.Address, opts)
}

// Registry stores entries in level db, keyed by name.
type Registry struct {
	db *leveldb.DB
}

func entryKey(name string) []byte {
	return append(append([]byte(nil), entryPrefix...), name...)
}

// Put validates and stores the entry, replacing any entry of the same name.
// A zero Created is set to the current time.
func (r *Registry) Put(e *Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	stored := *e
	if stored.Created == 0 {
		stored.Created = uint64(time.Now().Unix())
	}
	data, err := rlp.EncodeToBytes(&stored)
	if err != nil {
		return errors.Wrap(err, "encode entry")
	}
	if err := r.db.Put(entryKey(e.Name), data, &writeOpt); err != nil {
		return errors.Wrap(err, "put entry")
	}
	logger.Debug("stored contract", "name", e.Name, "address", e.Address)
	return nil
}

// Import stores all entries atomically.
func (r *Registry) Import(entries ...*Entry) error {
	batch := new(leveldb.Batch)
	now := uint64(time.Now().Unix())
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
		stored := *e
		if stored.Created == 0 {
			stored.Created = now
		}
		data, err := rlp.EncodeToBytes(&stored)
		if err != nil {
			return errors.Wrap(err, "encode entry")
		}
		batch.Put(entryKey(e.Name), data)
	}
	return errors.Wrap(r.db.Write(batch, &writeOpt), "write entries")
}

// Get retrieves the named entry. The error can be checked via IsNotFound.
func (r *Registry) Get(name string) (*Entry, error) {
	data, err := r.db.Get(entryKey(name), &readOpt)
	if err != nil {
		return nil, errors.Wrapf(err, "get entry %s", name)
	}
	var e Entry
	if err := rlp.DecodeBytes(data, &e); err != nil {
		return nil, errors.Wrapf(err, "decode entry %s", name)
	}
	return &e, nil
}

// Has returns whether the named entry exists.
func (r *Registry) Has(name string) (bool, error) {
	return r.db.Has(entryKey(name), &readOpt)
}

// Delete deletes the named entry, deleting a missing entry is not an error.
func (r *Registry) Delete(name string) error {
	return errors.Wrap(r.db.Delete(entryKey(name), &writeOpt), "delete entry")
}

// List returns all entries ordered by name.
func (r *Registry) List() ([]*Entry, error) {
	it := r.db.NewIterator(util.BytesPrefix(entryPrefix), &readOpt)
	defer it.Release()

	var entries []*Entry
	for it.Next() {
		var e Entry
		if err := rlp.DecodeBytes(it.Value(), &e); err != nil {
			return nil, errors.Wrapf(err, "decode entry %s", bytes.TrimPrefix(it.Key(), entryPrefix))
		}
		entries = append(entries, &e)
	}
	if err := it.Error(); err != nil {
		return nil, errors.Wrap(err, "iterate entries")
	}
	return entries, nil
}

// Close close the registry.
// Later operations will all fail.
func (r *Registry) Close() error {
	return r.db.Close()
}
