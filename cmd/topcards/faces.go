package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramonehamilton/topcards/internal/faces"
	"github.com/ramonehamilton/topcards/internal/scryfall"
)

var facesCmd = &cobra.Command{
	Use:   "faces",
	Short: "Manage the card face cache",
	Long: `The face cache links the front face of multi-faced cards (transform, modal
double-faced, split, flip, adventure, reversible) to their back face, so that
rankings list both names. It is refreshed automatically once it is older than
faces.max_age.`,
}

var facesRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Download card face metadata now, regardless of cache age",
	Args:  cobra.NoArgs,
	RunE:  runFacesRefresh,
}

var facesStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the face cache location and freshness",
	Args:  cobra.NoArgs,
	RunE:  runFacesStatus,
}

func init() {
	facesCmd.AddCommand(facesRefreshCmd)
	facesCmd.AddCommand(facesStatusCmd)
	rootCmd.AddCommand(facesCmd)
}

func runFacesRefresh(cmd *cobra.Command, args []string) error {
	if err := validate(); err != nil {
		return err
	}
	resolver, _, err := newResolver()
	if err != nil {
		return err
	}

	entries, err := resolver.Refresh(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Face cache updated: %d cards\n", len(entries))
	return nil
}

func runFacesStatus(cmd *cobra.Command, args []string) error {
	if err := validate(); err != nil {
		return err
	}
	resolver, path, err := newResolver()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Cache: %s\nState: %s\n", path, resolver.State())
	return nil
}

// newResolver builds the face resolver from cfg and returns the cache path.
func newResolver() (*faces.Resolver, string, error) {
	path := cfg.Faces.CachePath
	if path == "" {
		var err error
		if path, err = faces.DefaultCachePath(); err != nil {
			return nil, "", err
		}
	}
	maxAge, err := cfg.GetFacesMaxAge()
	if err != nil {
		return nil, "", err
	}

	// A failed refresh falls back to the cache, so requests are not retried.
	opts := scryfall.DefaultClientOptions()
	opts.MaxRetries = 0

	resolver, err := faces.NewResolver(faces.Config{
		Store:  faces.NewFileStore(path),
		Source: &faces.ScryfallSource{Client: scryfall.NewClientWithOptions(opts)},
		MaxAge: maxAge,
		Logger: logger,
	})
	if err != nil {
		return nil, "", fmt.Errorf("create face resolver: %w", err)
	}
	return resolver, path, nil
}

// faceIndex resolves the face index, or returns nil when expansion is off.
func faceIndex(ctx context.Context, enabled bool) *faces.Index {
	if !enabled {
		return nil
	}
	resolver, _, err := newResolver()
	if err != nil {
		logger.Warn("Face expansion disabled", "error", err)
		return nil
	}
	return resolver.Index(ctx)
}
