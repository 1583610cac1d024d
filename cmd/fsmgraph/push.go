package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/fsmgraph/pkg/adapters/redis"
	"github.com/spf13/cobra"
)

var pushCmd = &cobra.Command{
	Use:   "push <source> [name]",
	Short: "Store a graph description in Redis",
	Long: `Loads the description from any local source and saves it in Redis so that it can
be run as redis://<name>. The name defaults to the graph's own name.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cli.cfg.RedisAddr == "" {
			return fmt.Errorf("push needs --redis-addr or FSMGRAPH_REDIS_ADDR")
		}
		ttl, _ := cmd.Flags().GetDuration("ttl")

		desc, err := loadDescription(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		name := desc.Name
		if len(args) == 2 {
			name = args[1]
		}
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("graph has no name; pass one as the second argument")
		}

		store := redis.New(cli.cfg.RedisAddr, cli.cfg.RedisPassword, cli.cfg.RedisDB, redis.WithTTL(ttl))
		defer store.Close()

		if err := store.Save(cmd.Context(), name, desc); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "stored %s%s\n", redisScheme, name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pushCmd)
	pushCmd.Flags().Duration("ttl", 0, "Expire the stored graph after this long (0 keeps it)")
}
