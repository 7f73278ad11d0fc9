package main

import (
	"fmt"
	"time"

	"github.com/aretw0/kefschema/pkg/adapters/redis"
	"github.com/spf13/cobra"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish the definitions to Redis",
	Long: `Stores every action definition as JSON under the configured key prefix so
other platform processes can read them without parsing the descriptor.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd, nil)
		if err != nil {
			return err
		}
		rc := a.cfg.Redis
		if cmd.Flags().Changed("redis-addr") {
			rc.Addr, _ = cmd.Flags().GetString("redis-addr")
		}
		ttl, err := time.ParseDuration(rc.TTL)
		if err != nil {
			return fmt.Errorf("redis.ttl: %w", err)
		}

		store := redis.New(rc.Addr, rc.Password, rc.DB, redis.WithPrefix(rc.Prefix), redis.WithTTL(ttl))
		defer store.Close()

		ctx := cmd.Context()
		if err := store.Ping(ctx); err != nil {
			return fmt.Errorf("connecting to redis at %s: %w", rc.Addr, err)
		}
		if err := a.registry.Publish(ctx, store); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Published %d actions to %s (prefix %q)\n", a.registry.Len(), rc.Addr, rc.Prefix)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(publishCmd)
	publishCmd.Flags().String("redis-addr", "", "Redis address (overrides redis.addr)")
}
