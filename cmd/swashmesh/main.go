// Command swashmesh converts regular-grid SWASH cases to unstructured
// triangular meshes and back-fills the case files to run on them.
package main

import (
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"swashmesh"
	"swashmesh/engine"
	"swashmesh/feature"
	"swashmesh/swash"
	"swashmesh/synth"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}

func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "swashmesh",
		Short:         "unstructured mesh preprocessing for SWASH cases",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		createCommand(),
		applyCommand(),
		synthCommand(),
		outputsCommand(),
		exampleConfigCommand(),
	)
	return root
}

func exampleConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "example-config",
		Short: "print an annotated mesh.config template",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(swashmesh.ExampleMeshFile)
		},
	}
}

// caseConfig loads the case directory's mesh.config and overlays any
// flags the user set explicitly.
func caseConfig(cmd *cobra.Command, dir string) (*swashmesh.MeshConfig, error) {
	cfg, err := swashmesh.LoadConfig(dir)
	if err != nil {
		return nil, err
	}
	overlay := map[string]func(){
		"lc-fine": func() {
			cfg.LcFine, _ = cmd.Flags().GetFloat64("lc-fine")
		},
		"lc-coarse": func() {
			cfg.LcCoarse, _ = cmd.Flags().GetFloat64("lc-coarse")
		},
		"interpolation": func() {
			cfg.Interpolation, _ = cmd.Flags().GetInt("interpolation")
		},
		"size-mode": func() {
			cfg.SizeMode, _ = cmd.Flags().GetString("size-mode")
		},
		"projection": func() {
			cfg.Projection, _ = cmd.Flags().GetString("projection")
		},
		"wave-period": func() {
			cfg.WavePeriod, _ = cmd.Flags().GetFloat64("wave-period")
		},
	}
	for name, apply := range overlay {
		if flag := cmd.Flags().Lookup(name); flag != nil && flag.Changed {
			apply()
		}
	}
	return cfg, nil
}

func createCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <dir>",
		Short: "generate mesh.node and mesh.ele for a case directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := caseConfig(cmd, args[0])
			if err != nil {
				return err
			}
			return swashmesh.Create(args[0], cfg, engine.Refiner{})
		},
	}
	cmd.Flags().Float64("lc-fine", 0, "target edge length near features (m)")
	cmd.Flags().Float64("lc-coarse", 0, "target edge length in open water (m)")
	cmd.Flags().Int("interpolation", 0, "depth-grading exponent (1, 2 or 3)")
	cmd.Flags().String("size-mode", "", "size field mode: feature or depth")
	cmd.Flags().Float64("wave-period", 0, "incident wave period (s)")
	return cmd
}

func applyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <dir>",
		Short: "rewrite a case's grids and INPUT to run on the generated mesh",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := caseConfig(cmd, args[0])
			if err != nil {
				return err
			}
			return swashmesh.Apply(args[0], cfg)
		},
	}
	cmd.Flags().String("projection", "", "grid sampling mode: nearest or bilinear")
	return cmd
}

func synthCommand() *cobra.Command {
	opts := synth.DefaultOptions()
	cmd := &cobra.Command{
		Use:   "synth <dir>",
		Short: "generate a synthetic straight-coast test case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(args[0], 0777); err != nil {
				return err
			}
			return synth.WriteCase(args[0], opts)
		},
	}
	cmd.Flags().Float64Var(&opts.Depth, "depth", opts.Depth,
		"depth at the southern boundary (m)")
	cmd.Flags().Float64Var(&opts.Elevation, "elevation", opts.Elevation,
		"land elevation at the northern boundary (m)")
	cmd.Flags().BoolVar(&opts.Breakwaters, "breakwaters", false,
		"carve five breakwater bars and write a porosity grid")
	return cmd
}

func outputsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "outputs <dir>",
		Short: "convert solver timeseries and wave statistics to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gauges, err := feature.ReadGauges(
				filepath.Join(args[0], swashmesh.GaugeFileName))
			if err != nil {
				return err
			}
			return swash.ParseOutputs(args[0], gauges)
		},
	}
}
