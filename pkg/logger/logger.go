package logger

import (
	"go.uber.org/zap"
)

// Создание логгера. output: путь к файлу или stderr/stdout, по умолчанию stderr
func New(level, output string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	if output == "" {
		output = "stderr"
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = lvl
	cfg.OutputPaths = []string{output}
	cfg.ErrorOutputPaths = []string{output}
	return cfg.Build()
}
