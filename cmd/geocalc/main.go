// Command geocalc runs single geodesic calculations from the command line.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/woozymasta/geodesy/internal/config"
	"github.com/woozymasta/geodesy/internal/geo"
	"github.com/woozymasta/geodesy/internal/logger"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config"    env:"CONFIG_FILE" description:"Path to configuration file (optional)"`
	Ellipsoid  string `short:"e" long:"ellipsoid" env:"ELLIPSOID"   description:"Ellipsoid key" default:"WGS-84"`

	Distance    DistanceCommand    `command:"distance"    description:"Distance between two points in meters"`
	Bearing     BearingCommand     `command:"bearing"     description:"Initial and final bearing between two points"`
	Destination DestinationCommand `command:"destination" description:"Point reached from a start point, bearing and distance"`
	Length      LengthCommand      `command:"length"      description:"Length of a polyline"`
	Area        AreaCommand        `command:"area"        description:"Area and perimeter of a polygon"`
	Contains    ContainsCommand    `command:"contains"    description:"Check whether a polygon contains a point"`
	Format      FormatCommand      `command:"format"      description:"Format a coordinate"`
}

// app is the state shared by all commands.
type app struct {
	out       io.Writer
	config    *config.Config
	ellipsoid geo.Ellipsoid
}

var (
	opts Options
	env  = &app{out: os.Stdout}
)

// setup loads the configuration and resolves the ellipsoid.
func (a *app) setup(o *Options) error {
	cfg := &config.Config{}
	if o.ConfigFile != "" {
		var err error
		if cfg, err = config.Load(o.ConfigFile); err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
	} else {
		cfg.ApplyDefaults()
	}

	registry, err := cfg.Registry()
	if err != nil {
		return err
	}
	e, ok := registry.Lookup(o.Ellipsoid)
	if !ok {
		return fmt.Errorf("unknown ellipsoid %q, known: %v", o.Ellipsoid, registry.Keys())
	}

	a.config = cfg
	a.ellipsoid = e

	return nil
}

// newParser wires the options and the command handler. envErr is the
// result of loading .env and is only reported once logging is set up.
func newParser(envErr error) *flags.Parser {
	parser := flags.NewParser(&opts, flags.Default)
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		opts.Logger.Setup()
		if envErr != nil {
			log.Debug().Msg("No .env file found, using environment variables")
		}

		if err := env.setup(&opts); err != nil {
			return err
		}
		log.Debug().
			Str("ellipsoid", env.ellipsoid.Name()).
			Str("distance", env.config.Distance).
			Str("bearing", env.config.Bearing).
			Msg("Calculator configured")

		return cmd.Execute(args)
	}

	return parser
}

func main() {
	parser := newParser(godotenv.Load())

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}
