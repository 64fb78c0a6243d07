package configs

import (
	"go.uber.org/zap"

	"tandem-server/pkg/logger"
)

type LogsConfig struct {
	LogLevel   string `yaml:"log_level"`
	LogPath    string `yaml:"log_path"`
	StdoutOnly bool   `yaml:"stdout_only"`
}

var Logger *zap.Logger

func InitLogger() {
	logConfig := logger.Config{
		Level:  Configs.Logs.LogLevel,
		Format: "json",
	}

	// stdout_only 옵션에 따라 출력 대상을 결정
	if Configs.Logs.StdoutOnly {
		logConfig.Output = "stdout"
	} else {
		logConfig.Output = "file"
		logConfig.FilePath = Configs.Logs.LogPath
	}

	log, err := logger.NewZapLogger(logConfig)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	Logger = log
	Logger.Info("Logger initialized!")
}
