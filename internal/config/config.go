package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configはアプリ全体の設定
type Config struct {
	Port  string // サーバーポート（4000）
	GoEnv string // development/production

	DatabaseURL     string // あれば最優先
	DBHost          string // DBホスト（localhost）
	DBPort          int    // DBポート（5432）
	DBUser          string // DBユーザー
	DBPassword      string // DBパスワード
	DBName          string // DB名
	DBSSLMode       string
	DBMaxOpenConns  int
	DBMaxIdleConns  int
	AutoMigrate     bool // serve起動時にmigrate up
	LogLevel        string
	LogFormat       string   // json/console
	CORSAllowOrigin []string // 管理画面・QRメニューのオリジン

	JWTSecret string // 空なら/ordersは認証なし
}

// 既定値（環境変数が無いときに使う）
var defaults = map[string]any{
	"PORT":               "4000",
	"GO_ENV":             "development",
	"DB_HOST":            "localhost",
	"DB_PORT":            5432,
	"DB_USER":            "postgres",
	"DB_PASSWORD":        "postgres",
	"DB_NAME":            "qrorder",
	"DB_SSLMODE":         "disable",
	"DB_MAX_OPEN_CONNS":  10,
	"DB_MAX_IDLE_CONNS":  5,
	"AUTO_MIGRATE":       true,
	"LOG_LEVEL":          "info",
	"CORS_ALLOW_ORIGINS": "*",
}

// Loadは.env（任意）→環境変数の順で読む
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		//.envが無いのはOK（本番は環境変数だけ）
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.AutomaticEnv()

	cfg := Config{
		Port:  v.GetString("PORT"),
		GoEnv: v.GetString("GO_ENV"),

		DatabaseURL:    v.GetString("DATABASE_URL"),
		DBHost:         v.GetString("DB_HOST"),
		DBPort:         v.GetInt("DB_PORT"),
		DBUser:         v.GetString("DB_USER"),
		DBPassword:     v.GetString("DB_PASSWORD"),
		DBName:         v.GetString("DB_NAME"),
		DBSSLMode:      v.GetString("DB_SSLMODE"),
		DBMaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
		AutoMigrate:    v.GetBool("AUTO_MIGRATE"),

		LogLevel:        v.GetString("LOG_LEVEL"),
		LogFormat:       v.GetString("LOG_FORMAT"),
		CORSAllowOrigin: splitList(v.GetString("CORS_ALLOW_ORIGINS")),

		JWTSecret: v.GetString("JWT_SECRET"),
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = "console"
		if cfg.IsProduction() {
			cfg.LogFormat = "json"
		}
	}

	//最低限のチェック
	if cfg.DBPort <= 0 {
		return Config{}, fmt.Errorf("DB_PORT must be positive")
	}
	if cfg.DatabaseURL == "" && cfg.DBName == "" {
		return Config{}, fmt.Errorf("DB_NAME is required")
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// Addrはecho.Start用の":4000"形式
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// DSNはgorm(postgres)用。DATABASE_URLがあればそのまま
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// MigrateURLはgolang-migrate用のURL形式
func (c Config) MigrateURL() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}

func splitList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
