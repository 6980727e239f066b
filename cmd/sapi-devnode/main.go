// Command sapi-devnode runs an in-memory development chain over gRPC and
// offers a few tools for poking at a running node.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/blockberries/sapi/devnode"
	sapigrpc "github.com/blockberries/sapi/grpc"
	"github.com/blockberries/sapi/hasher"
	"github.com/blockberries/sapi/metadata"
	"github.com/blockberries/sapi/pallets/system"
	"github.com/blockberries/sapi/scale"
	"github.com/blockberries/sapi/storage"
	"github.com/blockberries/sapi/types"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "sapi-devnode",
		Usage:   "development chain and node tools",
		Version: version,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "verbosity",
				Value: 3,
				Usage: "log level, 0=silent 5=trace",
			},
		},
		Before: func(c *cli.Context) error {
			h := log.NewTerminalHandlerWithLevel(c.App.ErrWriter, log.FromLegacyLevel(c.Int("verbosity")), false)
			log.SetDefault(log.NewLogger(h))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run a development chain",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "chain configuration `FILE` (yaml)"},
					&cli.StringFlag{Name: "listen", Aliases: []string{"l"}, Value: "127.0.0.1:9944", Usage: "gRPC listen `ADDR`"},
				},
				Action: runNode,
			},
			{
				Name:      "key",
				Usage:     "print the storage key of an item",
				ArgsUsage: "[HASHER:0xKEY ...]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "pallet", Required: true, Usage: "pallet `NAME`"},
					&cli.StringFlag{Name: "item", Required: true, Usage: "storage item `NAME`"},
				},
				Action: runKey,
			},
			{
				Name:  "inspect",
				Usage: "describe a running node",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "node", Aliases: []string{"n"}, Value: "127.0.0.1:9944", Usage: "node `ADDR`"},
					&cli.BoolFlag{Name: "accounts", Usage: "list accounts and balances"},
					&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "dump the decoded metadata"},
				},
				Action: runInspect,
			},
		},
	}
}

func runNode(c *cli.Context) error {
	cfg := devnode.DefaultConfig()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = devnode.LoadConfig(path); err != nil {
			return err
		}
	}
	node, err := devnode.New(cfg)
	if err != nil {
		return err
	}
	defer node.Close()

	gs, err := sapigrpc.NewGRPCServer(node)
	if err != nil {
		return err
	}
	lis, err := net.Listen("tcp", c.String("listen"))
	if err != nil {
		return errors.Wrap(err, "listen")
	}
	srv := gs.NewServer()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 2)
	go func() { errc <- srv.Serve(lis) }()
	go func() { errc <- node.Run(ctx) }()
	genesis, _ := node.GenesisHash(ctx)
	log.Info("Serving node", "addr", lis.Addr(), "genesis", genesis)

	select {
	case <-ctx.Done():
	case err = <-errc:
	}
	srv.GracefulStop()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// runKey builds a key from its pallet, item and hasher-tagged key parts.
func runKey(c *cli.Context) error {
	var keys []storage.MapKey
	for _, arg := range c.Args().Slice() {
		k, err := parseMapKey(arg)
		if err != nil {
			return err
		}
		keys = append(keys, k)
	}
	key := storage.BuildKey(c.String("pallet"), c.String("item"), keys...)
	fmt.Fprintln(c.App.Writer, key.Hex())
	return nil
}

func parseMapKey(arg string) (storage.MapKey, error) {
	name, value, ok := strings.Cut(arg, ":")
	if !ok {
		return storage.MapKey{}, errors.Errorf("key %q: expected HASHER:0xHEX", arg)
	}
	h, err := hasher.ParseStorageHasher(name)
	if err != nil {
		return storage.MapKey{}, err
	}
	raw, err := hexutil.Decode(value)
	if err != nil {
		return storage.MapKey{}, errors.Wrapf(err, "key %q", arg)
	}
	return storage.NewMapKey(scale.Raw(raw), h), nil
}

func runInspect(c *cli.Context) error {
	ctx, cancel := context.WithTimeout(c.Context, 10*time.Second)
	defer cancel()
	conn, err := sapigrpc.Dial(ctx, c.String("node"), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return err
	}
	defer conn.Close()

	rv, err := conn.RuntimeVersion(ctx)
	if err != nil {
		return err
	}
	genesis, err := conn.GenesisHash(ctx)
	if err != nil {
		return err
	}
	raw, err := conn.Metadata(ctx)
	if err != nil {
		return err
	}
	meta, err := metadata.Decode(raw)
	if err != nil {
		return errors.Wrap(err, "decode metadata")
	}

	w := c.App.Writer
	fmt.Fprintf(w, "runtime:      %s/%s spec %d tx %d\n", rv.SpecName, rv.ImplName, rv.SpecVersion, rv.TransactionVersion)
	fmt.Fprintf(w, "genesis:      %s\n", genesis)
	fmt.Fprintf(w, "capabilities: %s\n", conn.Capabilities())
	if reader := conn.AsChainReader(); reader != nil {
		head, err := reader.FinalizedHead(ctx)
		if err != nil {
			return err
		}
		header, err := reader.Header(ctx, head)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "finalized:    #%d %s\n", header.Number, head)
	}
	for _, p := range meta.Pallets {
		fmt.Fprintf(w, "pallet %-10s index %-3d calls %-3d events %-3d storage %d\n",
			p.Name, p.Index, len(p.Calls), len(p.Events), len(p.Storage))
	}

	if c.Bool("accounts") {
		accounts, err := storage.Iter(storage.NewClient(conn, meta), system.Accounts()).Collect(ctx)
		if err != nil {
			return err
		}
		for _, a := range accounts {
			id := types.AccountID32(a.Segments[0])
			fmt.Fprintf(w, "account %s nonce %d free %s\n", id, a.Value.Nonce, a.Value.Data.Free)
		}
	}
	if c.Bool("verbose") {
		spew.Fdump(w, meta)
	}
	return nil
}
