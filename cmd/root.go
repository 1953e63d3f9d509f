package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/saravenpi/murmur/internal/app"
	"github.com/saravenpi/murmur/internal/config"
	"github.com/saravenpi/murmur/internal/logger"
	"github.com/saravenpi/murmur/internal/seed"
	"github.com/saravenpi/murmur/internal/store"
	"github.com/saravenpi/murmur/internal/ui"
	"github.com/spf13/cobra"
)

var (
	configPath string
	themeFlag  string
	storeFlag  string
	seedFlag   string
	section    string
	logFlag    string
	debugMode  bool
)

var rootCmd = &cobra.Command{
	Use:   "murmur",
	Short: "Terminal messenger mockup",
	Long: `Murmur is a terminal mockup of a messaging client: a chat list with
search and stories, conversations you can write into, and a settings panel.
Nothing is sent anywhere and nothing is saved between runs.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", config.DefaultPath(), "Config file")
	flags.StringVar(&themeFlag, "theme", "", "Start theme (light or dark)")
	flags.StringVar(&storeFlag, "store", "", "Store backend (memory or sqlite)")
	flags.StringVar(&seedFlag, "seed", "", "YAML seed file instead of the built-in demo data")
	flags.StringVar(&section, "section", "", "Section to open on (chats, contacts, calls, channels, groups, settings)")
	flags.StringVar(&logFlag, "log-file", "", "Log file path")
	flags.BoolVar(&debugMode, "debug", false, "Enable debug logging")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig layers defaults, the config file, .env and MURMUR_* variables,
// and finally the flags that were set on the command line.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("theme") {
		cfg.Theme = themeFlag
	}
	if flags.Changed("store") {
		cfg.Store = storeFlag
	}
	if flags.Changed("seed") {
		cfg.SeedFile = seedFlag
	}
	if flags.Changed("section") {
		cfg.StartSection = section
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFlag
	}
	if flags.Changed("debug") {
		cfg.Debug = debugMode
	}
	cfg.ExpandPaths()

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newState builds the store and the state container the UI runs on.
func newState(cfg config.Config) (*app.State, store.Store, error) {
	data, err := seed.Load(cfg.SeedFile)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading seed: %w", err)
	}
	s, err := store.Open(cfg.Store, data)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening store: %w", err)
	}
	state := app.NewState(s, cfg.Dark())
	state.SelectSection(cfg.Section())
	return state, s, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	if err := logger.Init(cfg.LogFile); err != nil {
		return err
	}
	defer logger.Close()
	logger.SetDebug(cfg.Debug)
	logger.Info("starting", "version", version, "store", cfg.Store, "theme", cfg.Theme)

	state, s, err := newState(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	unsubscribe := state.Subscribe(func(e app.Event) {
		logger.Debug("state event", "kind", e.Kind.String(), "section", e.Section.String(), "chat", e.ChatID)
	})
	defer unsubscribe()

	m := ui.New(state, ui.WithSelfName(cfg.SelfName))
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
