package configs

// MessagingConfig는 외부 메시징/영상 서비스(Stream) 접속 정보를 담습니다.
type MessagingConfig struct {
	ApiKey    string `yaml:"api_key"`
	ApiSecret string `yaml:"api_secret"`
}
