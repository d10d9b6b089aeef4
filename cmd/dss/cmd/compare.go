package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/app"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/domain/dss"
)

var (
	compareFile      string
	compareIDs       []int64
	compareAmenities []int64
	compareWeights   []float64
	compareTopsis    []float64
	compareLocation  []float64
)

// compareCmd runs one comparison against the configured database
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Rank listings with TOPSIS and print the result as JSON",
	Long: `Rank listings with TOPSIS against the configured database and print the
compare result as JSON. The request comes from --file (use - for stdin) or from flags.

Examples:
  go run ./cmd/dss compare --ids 1,2,3 --amenities 1,4 --weights 2,1
  go run ./cmd/dss compare --ids 1,2 --location 21.0285,105.8542
  go run ./cmd/dss compare --file request.json`,
	RunE: runCompare,
}

func init() {
	f := compareCmd.Flags()
	f.StringVarP(&compareFile, "file", "f", "", "JSON compare request, - for stdin")
	f.Int64SliceVar(&compareIDs, "ids", nil, "listing ids to compare")
	f.Int64SliceVar(&compareAmenities, "amenities", nil, "requested amenity ids")
	f.Float64SliceVar(&compareWeights, "weights", nil, "amenity weights, aligned with --amenities")
	f.Float64SliceVar(&compareTopsis, "topsis-weight", nil, "criterion weights (5, or 6 with a location)")
	f.Float64SliceVar(&compareLocation, "location", nil, "preferred location as latitude,longitude")
	compareCmd.MarkFlagsMutuallyExclusive("file", "ids")
}

func runCompare(cmd *cobra.Command, args []string) error {
	req, err := compareRequest(cmd.InOrStdin())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	backend, err := app.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	svc, err := app.NewCompareService(cfg, backend)
	if err != nil {
		return err
	}

	result, err := svc.Compare(ctx, req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// compareRequest reads the request from --file or builds it from flags
func compareRequest(stdin io.Reader) (dss.CompareRequest, error) {
	var req dss.CompareRequest

	if compareFile != "" {
		r := stdin
		if compareFile != "-" {
			f, err := os.Open(compareFile)
			if err != nil {
				return req, fmt.Errorf("open request: %w", err)
			}
			defer f.Close()
			r = f
		}
		if err := json.NewDecoder(r).Decode(&req); err != nil {
			return req, fmt.Errorf("decode request: %w", err)
		}
		if req.HouseRentIDs == nil {
			return req, errors.New("request: house_rent_ids is required")
		}
		return req, nil
	}

	if len(compareIDs) == 0 {
		return req, errors.New("either --file or --ids is required")
	}
	req.HouseRentIDs = compareIDs
	req.Amenities = compareAmenities
	req.Weights = compareWeights
	req.TopsisWeight = compareTopsis

	switch len(compareLocation) {
	case 0:
	case 2:
		req.PreferredLocation = &dss.Coordinate{Latitude: compareLocation[0], Longitude: compareLocation[1]}
	default:
		return req, fmt.Errorf("--location needs latitude,longitude, got %d values", len(compareLocation))
	}
	return req, nil
}
