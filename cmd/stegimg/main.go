package main

import (
	"errors"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/bodgit/stegimg"
	"github.com/bodgit/stegimg/config"
	"github.com/bodgit/stegimg/lsb"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

// options merges the configuration file with any flags given on the command
// line, flags take precedence
func options(c *cli.Context) (stegimg.Options, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return stegimg.Options{}, err
	}

	if c.IsSet("capacity") {
		cfg.Capacity = c.String("capacity")
	}
	mode, err := cfg.CapacityMode()
	if err != nil {
		return stegimg.Options{}, err
	}

	if c.IsSet("strict") {
		cfg.Strict = c.Bool("strict")
	}
	if c.IsSet("yes") {
		cfg.AssumeYes = c.Bool("yes")
	}
	if c.IsSet("journal") {
		cfg.Journal = c.String("journal")
	}

	confirm := prompt(os.Stdin, os.Stderr)
	if cfg.AssumeYes {
		confirm = func() (bool, error) { return true, nil }
	}

	return stegimg.Options{
		Capacity: mode,
		Strict:   cfg.Strict,
		Confirm:  confirm,
		Journal:  cfg.Journal,
	}, nil
}

func open(c *cli.Context) (*stegimg.Stegimg, error) {
	opts, err := options(c)
	if err != nil {
		return nil, err
	}
	return stegimg.New(opts, newLogger(c))
}

func exitError(err error) error {
	var ce *lsb.CapacityError
	if errors.As(err, &ce) {
		return cli.NewExitError(fmt.Sprintf("Error: %v\nNote: Text is padded with %d null bytes at front and back.", err, lsb.Padding), 1)
	}
	return cli.NewExitError(fmt.Sprintf("Error: %v", err), 1)
}

func main() {
	app := cli.NewApp()

	app.Name = "stegimg"
	app.Usage = "Steganographically encode and decode UTF-8 messages in images"
	app.Description = "Replaces the last two bits of each pixel color with text bits."
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			EnvVars: []string{"STEGIMG_CONFIG"},
			Value:   config.Default(),
			Usage:   "path to configuration file",
		},
		&cli.StringFlag{
			Name:    "capacity",
			EnvVars: []string{"STEGIMG_CAPACITY"},
			Value:   lsb.CapacityLiteral.String(),
			Usage:   "capacity formula, literal (width*width*6) or exact (width*height*6)",
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "fail if the end of the message is never found",
		},
		&cli.StringFlag{
			Name:    "journal",
			EnvVars: []string{"STEGIMG_JOURNAL"},
			Usage:   "path to journal database of encoded images",
		},
		&cli.BoolFlag{
			Name:    "yes",
			Aliases: []string{"y"},
			Usage:   "carry on decoding without asking if the padding is wrong",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "encode",
			Usage:       "Write a message to an image",
			Description: "Saved as encoded-NAME.png next to the original image",
			ArgsUsage:   "IMAGE TEXT",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				s, err := open(c)
				if err != nil {
					return exitError(err)
				}
				defer s.Close()

				if _, err := s.Encode(c.Args().Get(0), c.Args().Get(1)); err != nil {
					return exitError(err)
				}

				return nil
			},
		},
		{
			Name:        "decode",
			Usage:       "Read a message from an image",
			Description: "The message is printed unless a text file is given",
			ArgsUsage:   "IMAGE [TEXT]",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				s, err := open(c)
				if err != nil {
					return exitError(err)
				}
				defer s.Close()

				msg, err := s.Decode(c.Args().Get(0), c.Args().Get(1))
				if err != nil {
					return exitError(err)
				}

				if c.Args().Get(1) == "" {
					if err := printMessage(os.Stdout, msg); err != nil {
						return exitError(err)
					}
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Find images containing messages",
			Description: "Every image under DIRECTORY is decoded without prompting",
			ArgsUsage:   "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				s, err := open(c)
				if err != nil {
					return exitError(err)
				}
				defer s.Close()

				found, err := s.Scan(c.Args().First())
				if err != nil {
					return exitError(err)
				}

				for _, f := range found {
					fmt.Printf("%s: %q\n", f.Path, f.Message)
				}

				return nil
			},
		},
		{
			Name:        "history",
			Usage:       "List images recorded in the journal",
			Description: "",
			Action: func(c *cli.Context) error {
				s, err := open(c)
				if err != nil {
					return exitError(err)
				}
				defer s.Close()

				entries, err := s.History()
				if err != nil {
					return exitError(err)
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 8, 1, ' ', 0)
				fmt.Fprintln(w, "CREATED\tNAME\tSIZE\tBYTES\tCAPACITY\tSHA1")
				for _, e := range entries {
					fmt.Fprintf(w, "%s\t%s\t%dx%d\t%d\t%s\t%s\n", e.Created.Format(time.RFC3339), e.Name, e.Width, e.Height, e.Length, e.Capacity, e.SHA1)
				}

				return w.Flush()
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
