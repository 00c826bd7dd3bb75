// Command sentinelctl is an offline helper for operators: it derives
// watermark markers, generates honeytoken values and prints anchor hashes
// without a running server.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	anchormodels "datasentinel/internal/anchor/models"
	"datasentinel/internal/honeytoken/generator"
	htmodels "datasentinel/internal/honeytoken/models"
	"datasentinel/internal/watermark/codec"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sentinelctl",
		Short:         "Offline tools for the datasentinel leak-forensics service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newEncodeCmd(), newGenerateCmd(), newHashCmd())
	return root
}

type encodeOutput struct {
	Marker    string `json:"marker"`
	PartnerID string `json:"partner_id"`
	UserID    string `json:"user_id"`
	Timestamp string `json:"timestamp"`
}

func newEncodeCmd() *cobra.Command {
	var (
		secret    string
		length    int
		partnerID string
		userID    string
		at        string
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Derive the watermark marker for a partner, user and timestamp",
		Long: "Derives the marker exactly as the server does. The secret defaults to " +
			"WATERMARK_SECRET; without the server's secret the marker will not decode.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if secret == "" {
				secret = os.Getenv("WATERMARK_SECRET")
			}
			c, err := codec.New(secret, length)
			if err != nil {
				return err
			}
			ts := time.Now().UTC()
			if at != "" {
				if ts, err = time.Parse(time.RFC3339Nano, at); err != nil {
					return fmt.Errorf("invalid --at: %w", err)
				}
			}
			out := encodeOutput{
				Marker:    c.Encode(partnerID, userID, ts),
				PartnerID: partnerID,
				UserID:    userID,
				Timestamp: codec.CanonicalTime(ts),
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Marker)
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "Watermark secret (default $WATERMARK_SECRET)")
	cmd.Flags().IntVar(&length, "length", codec.DefaultLength, "Hex characters after the prefix")
	cmd.Flags().StringVar(&partnerID, "partner", "", "Partner ID")
	cmd.Flags().StringVar(&userID, "user", "", "User ID")
	cmd.Flags().StringVar(&at, "at", "", "RFC3339 timestamp (default now)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	_ = cmd.MarkFlagRequired("partner")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

type generateOutput struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Hash  string `json:"hash"`
}

func newGenerateCmd() *cobra.Command {
	var (
		tokenType string
		count     int
		domain    string
		seed      uint64
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate honeytoken values without registering them",
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := htmodels.Type(tokenType)
			if !t.IsValid() {
				return fmt.Errorf("unknown token type %q", tokenType)
			}
			if count < 1 || count > 1000 {
				return fmt.Errorf("--count must be within [1,1000]")
			}
			opts := []generator.Option{generator.WithDomain(domain)}
			if seed != 0 {
				opts = append(opts, generator.WithSeed(seed))
			}
			gen := generator.New(opts...)

			out := make([]generateOutput, 0, count)
			for range count {
				value, err := gen.Generate(t)
				if err != nil {
					return err
				}
				out = append(out, generateOutput{Type: tokenType, Value: value, Hash: anchormodels.Hash(value)})
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			for _, o := range out {
				fmt.Fprintln(cmd.OutOrStdout(), o.Value)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&tokenType, "type", string(htmodels.TypeEmail), "Token type: email, phone, name or id")
	cmd.Flags().IntVar(&count, "count", 1, "Number of values")
	cmd.Flags().StringVar(&domain, "domain", generator.DefaultDomain, "Mail domain for email tokens")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Deterministic seed (0 means random)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <value>",
		Short: "Print the Keccak-256 anchor hash of a honeytoken value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), anchormodels.Hash(args[0]))
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
