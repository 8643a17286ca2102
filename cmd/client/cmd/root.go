package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"closeouts/internal/app/client"
	"closeouts/internal/app/client/config"
	"closeouts/internal/utils/logger"
)

var (
	cfgFile   string
	debug     bool
	serverURL string
	app       *client.App
)

var rootCmd = &cobra.Command{
	Use:   "closeoutctl",
	Short: "closeoutctl - сверка закрытий касс",
	Long: `closeoutctl — клиент для просмотра и сверки закрытий кассовых смен.

Показывает суммы по способам оплаты для каждого закрытия, позволяет
править записи и запускать синхронизацию диапазона дней с POS.`,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: closeApp,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("ошибка чтения конфигурации: %w", err)
		}
	}

	cfg := config.MustLoad()
	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}

	env := cfg.Env
	if debug {
		env = logger.EnvLocal
	}
	log := logger.NewWithWriter(env, os.Stderr)

	var err error
	app, err = client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	cmd.SetContext(client.WithApp(cmd.Context(), app))
	return nil
}

func closeApp(_ *cobra.Command, _ []string) error {
	if app == nil {
		return nil
	}
	return app.Close()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "подробный цветной лог в stderr")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "адрес сервера (host:port)")
}
