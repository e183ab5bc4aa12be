package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"stocksphere/internal/auth"
	"stocksphere/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var resetStore bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the seed data unless the store already holds a document",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := setupPersistent(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if resetStore {
			if err := a.store.Reset(cmd.Context()); err != nil {
				return err
			}
			a.log.Info("store reset to seed data", zap.String("key", a.store.Key()))
			return nil
		}
		if err := a.store.Initialize(cmd.Context()); err != nil {
			return err
		}
		a.log.Info("store initialized", zap.String("key", a.store.Key()))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the store document as JSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := setupPersistent(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		st, err := a.store.Snapshot(cmd.Context())
		if err != nil {
			return err
		}
		data, err := store.Encode(st)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	},
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Upload a snapshot of the store to object storage",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := setupPersistent(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		snapshots, err := a.requireSnapshots()
		if err != nil {
			return err
		}
		name, err := snapshots.Backup(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), name)
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore [snapshot]",
	Short: "Replace the store with a snapshot, the latest one by default",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setupPersistent(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		snapshots, err := a.requireSnapshots()
		if err != nil {
			return err
		}
		var name string
		if len(args) == 1 {
			name = args[0]
		}
		restored, err := snapshots.Restore(cmd.Context(), name)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), restored)
		return nil
	},
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Read a password from stdin and print its bcrypt hash for AUTH_PASSWORD_HASH",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return errors.New("no password given on stdin")
		}
		password := strings.TrimRight(line, "\r\n")
		if password == "" {
			return errors.New("password must not be empty")
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
		return err
	},
}

func init() {
	initCmd.Flags().BoolVar(&resetStore, "reset", false, "overwrite existing content with the seed data")
}
