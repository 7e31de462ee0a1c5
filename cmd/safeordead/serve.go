package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/safe-or-dead/internal/config"
	"github.com/vovakirdan/safe-or-dead/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Safe or Dead SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session and balance. Finished rounds of
every connection go to the server's history database.

Settings are read from the environment first, then flags override them:
  SAFEORDEAD_SSH_ADDR       - listen address (default :23235)
  SAFEORDEAD_HOST_KEY       - host key path (default ~/.safeordead/host_key)
  SAFEORDEAD_DB             - history database
  SAFEORDEAD_IDLE_TIMEOUT   - e.g. 30m
  SAFEORDEAD_TICK_RATE      - per-session tick rate

Examples:
  safeordead serve                           # Listen on :23235 with auto-generated key
  safeordead serve --ssh :2222               # Listen on port 2222
  safeordead serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle time before disconnecting, e.g. 30m")
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg, err := config.LoadServer()
	if err != nil {
		fail("%v", err)
	}

	flags := cmd.Flags()
	if flags.Changed("ssh") {
		cfg.Address = flagSSHAddr
	}
	if flags.Changed("host-key") {
		cfg.HostKeyPath = flagHostKey
	}
	if flags.Changed("idle-timeout") {
		cfg.IdleTimeout = flagIdleTimeout
	}
	if flags.Changed("db") {
		cfg.DBPath = flagDBPath
	}
	if flags.Changed("fps") {
		cfg.TickRate = flagFPS
	}

	rules := loadRules()
	logger, closeLog := newLogger(os.Stderr, "safeordead-ssh")
	defer closeLog()

	server, err := tui.NewSSHServer(cfg, rules, logger)
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting Safe or Dead SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("server: %v", err)
	}
}
