package closeouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"closeouts/internal/app/client"
	"closeouts/internal/domain/closeout"
)

var (
	jsonOutput bool
	offline    bool
)

// CloseoutsCmd - родительская команда для работы с закрытиями касс
var CloseoutsCmd = &cobra.Command{
	Use:   "closeouts",
	Short: "Закрытия касс",
	Long:  `Просмотр, создание, изменение и удаление закрытий кассовых смен.`,
}

func appFrom(cmd *cobra.Command) (*client.App, error) {
	app, ok := client.FromContext(cmd.Context())
	if !ok {
		return nil, fmt.Errorf("приложение не инициализировано")
	}
	return app, nil
}

// load загружает данные с сервера. Если сервер недоступен, показывается
// последний сохранённый снимок с предупреждением.
func load(ctx context.Context, app *client.App) error {
	if offline {
		return app.LoadCached(ctx)
	}

	err := app.Refresh(ctx)
	if err == nil {
		return nil
	}
	if cacheErr := app.LoadCached(ctx); cacheErr != nil {
		return errors.Join(err, cacheErr)
	}
	color.New(color.FgYellow).Fprintf(os.Stderr,
		"⚠️  Сервер недоступен (%v), показаны данные от %s\n",
		err, app.FetchedAt().Format("02/01/2006 15:04"))
	return nil
}

// readRecordFile читает запись из JSON-файла. Ключи и суммы разбираются
// так же, как ответы сервера.
func readRecordFile(path string) (closeout.Record, error) {
	if path == "" {
		return closeout.Record{}, fmt.Errorf("укажите файл записи: --file rec.json")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return closeout.Record{}, fmt.Errorf("ошибка чтения файла: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return closeout.Record{}, fmt.Errorf("файл не является JSON-объектом: %w", err)
	}
	return closeout.DecodeRecord(raw), nil
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func init() {
	CloseoutsCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "вывод в формате JSON")
}
