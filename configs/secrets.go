package configs

type Secrets struct {
	// WebhookSecret은 아이덴티티 공급자 웹훅 서명 검증에 사용됩니다 (svix)
	WebhookSecret string `yaml:"webhook_secret"`
	// SessionPublicKey는 세션 토큰 검증용 PEM 공개키입니다
	SessionPublicKey string `yaml:"session_public_key"`
}
