package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"waveguide/calculator"
	"waveguide/model"
	"waveguide/server"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

var (
	configPath string

	radii      []float64
	indices    []float64
	materials  []string
	wavelength float64
	orders     []int
	points     int
	neffMin    float64
	neffMax    float64
)

var rootCmd = &cobra.Command{
	Use:   "waveguide",
	Short: "Characteristic equation of multilayer step-index fibers",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve residual scans over a websocket on /ws, metrics on /metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := calculator.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg.ApplyLogLevel()

		upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
		s := server.NewServer(cfg.Addr, upgrader, calculator.NewCalculator(cfg))
		return s.Serve()
	},
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Evaluate one residual grid and print it as JSON",
	Example: `  waveguide scan --radius 4e-6 --index 1.45 --index 1.44 --nu 0 --nu 1
  waveguide scan --radius 4e-6 --index 1.4504 --material ,silica`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := calculator.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg.ApplyLogLevel()

		layers, err := buildLayers()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		res, err := calculator.NewCalculator(cfg).Scan(ctx, calculator.ScanRequest{
			Layers:     layers,
			Wavelength: wavelength,
			NeffMin:    neffMin,
			NeffMax:    neffMax,
			Points:     points,
			Orders:     orders,
		})
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	},
}

// buildLayers pairs the repeated --index/--material flags with --radius.
// The last layer is the cladding and takes no radius.
func buildLayers() ([]model.Layer, error) {
	n := len(indices)
	if len(materials) > n {
		n = len(materials)
	}
	if n != len(radii)+1 {
		return nil, fmt.Errorf("%d layers need %d radii, got %d", n, n-1, len(radii))
	}
	layers := make([]model.Layer, n)
	for i := range layers {
		if i < len(radii) {
			layers[i].Radius = radii[i]
		}
		if i < len(indices) {
			layers[i].Index = indices[i]
		}
		if i < len(materials) {
			layers[i].Material = materials[i]
		}
	}
	return layers, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", calculator.DefaultConfigPath, "Configuration file path")

	scanCmd.Flags().Float64SliceVar(&radii, "radius", nil, "Outer radius of each inner layer in meters")
	scanCmd.Flags().Float64SliceVar(&indices, "index", nil, "Refractive index of each layer, cladding last")
	scanCmd.Flags().StringSliceVar(&materials, "material", nil, "Material of each layer (overrides --index when set)")
	scanCmd.Flags().Float64Var(&wavelength, "wavelength", 1.55e-6, "Vacuum wavelength in meters")
	scanCmd.Flags().IntSliceVar(&orders, "nu", []int{0}, "Azimuthal orders")
	scanCmd.Flags().IntVar(&points, "points", 0, "neff samples per order (0 = config)")
	scanCmd.Flags().Float64Var(&neffMin, "min", 0, "Lowest neff (0 = cladding index)")
	scanCmd.Flags().Float64Var(&neffMax, "max", 0, "Highest neff (0 = largest layer index)")

	rootCmd.AddCommand(serveCmd, scanCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
