// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/ethereum/go-ethereum/common"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/abikit/artifact"
	"github.com/vechain/abikit/registry"
)

func registryAddAction(ctx *cli.Context) error {
	if len(ctx.Args()) != 2 {
		return errors.New("name and file required")
	}
	a, err := artifact.Load(ctx.Args().Get(1))
	if err != nil {
		return err
	}
	entry := &registry.Entry{
		Name:     ctx.Args().First(),
		ABI:      a.ABI,
		Bytecode: a.Bytecode,
	}
	if s := ctx.String(addressFlag.Name); s != "" {
		if !common.IsHexAddress(s) {
			return fmt.Errorf("%s: invalid address %q", addressFlag.Name, s)
		}
		addr := common.HexToAddress(s)
		entry.Address = &addr
	}

	reg, err := openRegistry(ctx)
	if err != nil {
		return err
	}
	defer reg.Close()

	if err := reg.Put(entry); err != nil {
		return err
	}
	logger.Info("contract registered", "name", entry.Name, "format", a.Format)
	return nil
}

func registryImportAction(ctx *cli.Context) error {
	if !ctx.Args().Present() {
		return errors.New("artifact files required")
	}
	entries := make([]*registry.Entry, 0, len(ctx.Args()))
	for _, path := range ctx.Args() {
		a, err := artifact.Load(path)
		if err != nil {
			return err
		}
		entries = append(entries, &registry.Entry{Name: a.Name, ABI: a.ABI, Bytecode: a.Bytecode})
	}

	reg, err := openRegistry(ctx)
	if err != nil {
		return err
	}
	defer reg.Close()

	if err := reg.Import(entries...); err != nil {
		return err
	}
	logger.Info("contracts imported", "count", len(entries))
	return nil
}

func registryListAction(ctx *cli.Context) error {
	reg, err := openRegistry(ctx)
	if err != nil {
		return err
	}
	defer reg.Close()

	entries, err := reg.List()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(ctx.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tADDRESS\tBYTECODE\tCREATED")
	for _, e := range entries {
		addr := "-"
		if e.Address != nil {
			addr = e.Address.Hex()
		}
		created := time.Unix(int64(e.Created), 0).UTC().Format(time.RFC3339)
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", e.Name, addr, len(e.Bytecode), created)
	}
	return w.Flush()
}

func registryRemoveAction(ctx *cli.Context) error {
	name := ctx.Args().First()
	if name == "" {
		return errors.New("name required")
	}
	reg, err := openRegistry(ctx)
	if err != nil {
		return err
	}
	defer reg.Close()

	has, err := reg.Has(name)
	if err != nil {
		return err
	}
	if !has {
		return fmt.Errorf("contract %s not registered", name)
	}
	return reg.Delete(name)
}
