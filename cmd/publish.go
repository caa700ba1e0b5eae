package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	gstorage "cloud.google.com/go/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/emilroby/nsefi-harvester/internal/clock/ist"
	collyfetcher "github.com/emilroby/nsefi-harvester/internal/fetcher/colly"
	"github.com/emilroby/nsefi-harvester/internal/harvest"
	"github.com/emilroby/nsefi-harvester/internal/id/uuid"
	"github.com/emilroby/nsefi-harvester/internal/logging"
	"github.com/emilroby/nsefi-harvester/internal/snapshot/gcs"
	"github.com/emilroby/nsefi-harvester/internal/snapshot/local"
	"github.com/emilroby/nsefi-harvester/internal/sources"
)

// newPublishCmd creates and configures the 'publish' subcommand. It harvests
// every configured source for the target month and persists the snapshot.
// The OS scheduler invokes this on a fixed cadence; the staleness check
// below makes overlapping invocations cheap.
func newPublishCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish YEAR MONTH",
		Short: "Harvests all sources and publishes the month snapshot",
		Long: `Runs the harvest pipeline (fetch, extract, normalize, filter, dedupe)
for every configured source category, merges the results into the stored
month snapshot and persists it. A source failure is logged and skipped;
only a storage failure aborts the run.`,
		Args: cobra.ExactArgs(2),
		RunE: runPublishCommand,
	}
	cmd.Flags().Bool("force", false, "harvest even if the existing snapshot is still fresh")
	return cmd
}

func runPublishCommand(cmd *cobra.Command, args []string) error {
	year, month, err := parseMonthArgs(args)
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return fmt.Errorf("read force flag: %w", err)
	}

	v := viper.GetViper()
	clock := ist.New()

	store, err := local.New(local.Config{
		Dir:    v.GetString("snapshot.dir"),
		Prefix: v.GetString("snapshot.prefix"),
	}, clock)
	if err != nil {
		return fmt.Errorf("init snapshot store: %w", err)
	}

	if !force {
		fresh, err := snapshotIsFresh(cmd.Context(), store, clock, year, month, staleAfter(v))
		if err != nil {
			return err
		}
		if fresh {
			logging.L.Info("Snapshot is fresh; skipping harvest",
				zap.Int("year", year), zap.Int("month", int(month)))
			fmt.Fprintf(cmd.OutOrStdout(), "Snapshot for %04d-%02d is fresh; skipping harvest\n", year, month)
			return nil
		}
	}

	srcs, err := sources.Load(v)
	if err != nil {
		return fmt.Errorf("load sources: %w", err)
	}

	fetcher := collyfetcher.New(collyfetcher.Config{
		UserAgent:     v.GetString("http.user_agent"),
		RespectRobots: v.GetBool("http.respect_robots"),
		Timeout:       v.GetDuration("http.timeout"),
	})

	harvester := harvest.NewHarvester(fetcher, store, clock, uuid.NewUUIDGenerator(), srcs, logging.L)
	mirror, err := buildMirror(cmd.Context(), v)
	if err != nil {
		return err
	}
	if mirror != nil {
		harvester.SetMirror(mirror)
	}

	count, err := harvester.Run(cmd.Context(), year, month)
	if err != nil {
		return fmt.Errorf("publish snapshot: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Published snapshot for %04d-%02d with %d items\n", year, month, count)
	return nil
}

// parseMonthArgs validates the YEAR MONTH positional arguments.
func parseMonthArgs(args []string) (int, time.Month, error) {
	year, err := strconv.Atoi(args[0])
	if err != nil || year < 1 {
		return 0, 0, fmt.Errorf("year must be a positive integer, got %q", args[0])
	}
	month, err := strconv.Atoi(args[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month must be between 1 and 12, got %q", args[1])
	}
	return year, time.Month(month), nil
}

// snapshotIsFresh reports whether the stored snapshot is recent enough to
// skip this run. Absence means a harvest is due; a storage failure is fatal.
func snapshotIsFresh(ctx context.Context, store harvest.Store, clock harvest.Clock, year int, month time.Month, threshold time.Duration) (bool, error) {
	snap, err := store.Read(ctx, year, int(month))
	switch {
	case errors.Is(err, harvest.ErrSnapshotNotFound):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("read snapshot: %w", err)
	}
	return !snap.Stale(clock.Now(), threshold), nil
}

func staleAfter(v *viper.Viper) time.Duration {
	if d := v.GetDuration("snapshot.stale_after"); d > 0 {
		return d
	}
	return harvest.DefaultStaleAfter
}

// buildMirror returns the configured snapshot mirror, or nil when mirroring
// is disabled.
func buildMirror(ctx context.Context, v *viper.Viper) (harvest.Mirror, error) {
	switch provider := v.GetString("mirror.provider"); provider {
	case "", "none":
		return nil, nil
	case "gcs":
		bucket := v.GetString("mirror.gcs.bucket")
		if bucket == "" {
			return nil, fmt.Errorf("mirror provider is 'gcs' but mirror.gcs.bucket is not set")
		}
		client, err := gstorage.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("init gcs client: %w", err)
		}
		logging.L.Info("Mirroring snapshots to GCS", zap.String("bucket", bucket))
		return gcs.New(client, gcs.Config{Bucket: bucket, Prefix: v.GetString("snapshot.prefix")})
	default:
		return nil, fmt.Errorf("unknown mirror provider: %s", provider)
	}
}
