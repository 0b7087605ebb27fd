// Binary protostar parses coin amounts and resolves transaction signers from
// the global configuration or from the --signer-* flags.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/rs/zerolog"

	"github.com/iboss-ptk/protostar-sdk/internal/coin"
	"github.com/iboss-ptk/protostar-sdk/internal/config"
	"github.com/iboss-ptk/protostar-sdk/internal/metrics"
	"github.com/iboss-ptk/protostar-sdk/internal/signer"
	"github.com/iboss-ptk/protostar-sdk/internal/util"
)

const defaultConfigPath = "protostar.yaml"

const usage = `usage: protostar [--config path] [--log-level level] <command> [args]

commands:
  coin <amount>   parse an amount such as 1000uosmo
  signer          resolve the signer and print its address
  accounts        list configured accounts
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("protostar", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.Usage = func() { fmt.Fprint(stderr, usage) }
	configPath := global.String("config", util.GetEnv("PROTOSTAR_CONFIG", defaultConfigPath), "path to the global config")
	logLevel := global.String("log-level", "", "override app.log_level")
	if err := global.Parse(args); err != nil {
		return 2
	}
	if global.NArg() == 0 {
		global.Usage()
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	level := cfg.App.LogLevel
	if *logLevel != "" {
		level = *logLevel
	}
	log := util.NewConsoleLogger(stderr, level)

	cmd, rest := global.Arg(0), global.Args()[1:]
	switch cmd {
	case "coin":
		err = runCoin(rest, stdout, stderr, log)
	case "signer":
		err = runSigner(rest, cfg, stdout, stderr, log)
	case "accounts":
		for _, name := range cfg.AccountNames() {
			fmt.Fprintln(stdout, name)
		}
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		global.Usage()
		return 2
	}

	if werr := metrics.WriteTextfile(cfg.App.MetricsTextfile); werr != nil {
		log.Warn().Err(werr).Str("path", cfg.App.MetricsTextfile).Msg("metrics export failed")
	}
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "%s: %v\n", cmd, err)
		return 1
	}
	return 0
}

// loadConfig falls back to defaults only when the default path is absent.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) && path == defaultConfigPath {
		return config.Default(), nil
	}
	return cfg, err
}

func runCoin(args []string, stdout, stderr io.Writer, log zerolog.Logger) error {
	flags := flag.NewFlagSet("coin", flag.ContinueOnError)
	flags.SetOutput(stderr)
	asSDK := flags.Bool("sdk", false, "also validate the denom against Cosmos SDK rules")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return errors.New("expected exactly one amount argument")
	}

	c, err := coin.Parse(flags.Arg(0))
	metrics.ObserveCoinParse(err)
	if err != nil {
		return err
	}
	if *asSDK {
		if _, err := c.ToSDK(); err != nil {
			return err
		}
	}
	log.Debug().Str("coin", c.String()).Msg("coin parsed")
	fmt.Fprintf(stdout, "amount: %s\ndenom: %s\n", c.Amount(), c.Denom())
	return nil
}

func runSigner(args []string, cfg *config.Config, stdout, stderr io.Writer, log zerolog.Logger) error {
	flags := flag.NewFlagSet("signer", flag.ContinueOnError)
	flags.SetOutput(stderr)
	var a signer.Args
	flags.StringVar(&a.Account, "signer-account", "", "predefined account as the tx signer")
	flags.StringVar(&a.Mnemonic, "signer-mnemonic", "", "mnemonic as the tx signer")
	flags.StringVar(&a.PrivateKey, "signer-private-key", "", "private key as the tx signer (base64 encoded)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	a = signer.ArgsFromEnv(a)
	if err := a.Validate(); err != nil {
		return err
	}

	cred, err := a.Credential()
	if err != nil {
		metrics.ObserveResolution(signer.Source(nil), err)
		return err
	}
	key, err := signer.NewResolver(cfg.Accounts, cfg.DerivationPath, log).Resolve(cred)
	metrics.ObserveResolution(signer.Source(cred), err)
	if err != nil {
		return err
	}
	defer key.Zero()

	addr, err := key.Address(cfg.AccountPrefix)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "address: %s\npubkey: %X\n", addr, key.PubKey().Bytes())
	return nil
}
