package configs

import (
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

type configs struct {
	Postgres  PostgresConfig  `yaml:"postgres"`
	Redis     RedisConfig     `yaml:"redis"`
	Service   ServiceConfig   `yaml:"service"`
	Logs      LogsConfig      `yaml:"logs"`
	Secrets   Secrets         `yaml:"secrets"`
	Email     EmailConfig     `yaml:"email"`
	Messaging MessagingConfig `yaml:"messaging"`
}

var Configs configs

// Init은 설정 파일을 로드하고 로거를 초기화합니다.
// configPath가 nil이면 기본 경로(configs/file/configs.yaml)를 사용합니다.
func Init(configPath *string) {
	var path string
	if configPath == nil || *configPath == "" {
		if env := os.Getenv("CONFIG_PATH"); env != "" {
			path = env
		} else {
			_, b, _, _ := runtime.Caller(0)
			path = filepath.Dir(b) + "/file/configs.yaml"
		}
	} else {
		path = *configPath
	}
	load(path)

	InitLogger()
}

func load(path string) {
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		panic("Failed to read config file: " + err.Error())
	}
	if err := yaml.Unmarshal(yamlFile, &Configs); err != nil {
		panic("Failed to parse config file: " + err.Error())
	}
}
