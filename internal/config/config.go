package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	Upload          Upload          `mapstructure:",squash"`
	Pipeline        Pipeline        `mapstructure:",squash"`
	DatasetEviction DatasetEviction `mapstructure:",squash"`
	Icons           Icons           `mapstructure:",squash"`
}

type Server struct {
	Host               string   `mapstructure:"host"`
	Port               string   `mapstructure:"port"`
	CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Upload struct {
	MaxSizeMB      int64   `mapstructure:"upload_max_size_mb"`
	SheetName      string  `mapstructure:"upload_sheet_name"`
	SheetMode      string  `mapstructure:"upload_sheet_mode"`
	RateLimitRPS   float64 `mapstructure:"upload_rate_limit_rps"`
	RateLimitBurst int     `mapstructure:"upload_rate_limit_burst"`
}

// MaxBytes retorna o limite do corpo da requisição de upload em bytes
func (u Upload) MaxBytes() int64 {
	return u.MaxSizeMB << 20
}

type Pipeline struct {
	TopN        int `mapstructure:"pipeline_top_n"`
	PreviewRows int `mapstructure:"pipeline_preview_rows"`
}

type DatasetEviction struct {
	TTL          time.Duration `mapstructure:"dataset_ttl"`
	CronSchedule string        `mapstructure:"dataset_eviction_cron"`
	Enabled      bool          `mapstructure:"dataset_eviction_enabled"`
}

type Icons struct {
	Enabled bool          `mapstructure:"icons_enabled"`
	BaseURL string        `mapstructure:"icons_base_url"`
	Timeout time.Duration `mapstructure:"icons_timeout"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("HOST", "localhost")
	v.SetDefault("PORT", 8000)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8501")

	v.SetDefault("LOG_LEVEL", "debug")

	// Defaults para upload de planilhas
	v.SetDefault("UPLOAD_MAX_SIZE_MB", 20)          // Tamanho máximo do arquivo
	v.SetDefault("UPLOAD_SHEET_NAME", "Sample Data") // Aba esperada no arquivo
	v.SetDefault("UPLOAD_SHEET_MODE", "strict")      // strict, first ou preferred
	v.SetDefault("UPLOAD_RATE_LIMIT_RPS", 2)         // Uploads por segundo no processo
	v.SetDefault("UPLOAD_RATE_LIMIT_BURST", 5)

	v.SetDefault("PIPELINE_TOP_N", 5)
	v.SetDefault("PIPELINE_PREVIEW_ROWS", 5)

	// Defaults para remoção de datasets sem acesso
	v.SetDefault("DATASET_TTL", "2h")
	v.SetDefault("DATASET_EVICTION_CRON", "*/10 * * * *") // A cada 10 minutos
	v.SetDefault("DATASET_EVICTION_ENABLED", true)

	v.SetDefault("ICONS_ENABLED", false)
	v.SetDefault("ICONS_BASE_URL", "")
	v.SetDefault("ICONS_TIMEOUT", "2s")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	v := viper.New()

	// Configurar valores padrão
	SetDefaults(v)

	v.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	config := &Config{}
	err := v.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar configuração")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate verifica combinações inválidas que o decode não detecta
func (c *Config) Validate() error {
	if c.Upload.MaxSizeMB <= 0 {
		return errors.Errorf("UPLOAD_MAX_SIZE_MB deve ser positivo: %d", c.Upload.MaxSizeMB)
	}
	if c.Pipeline.TopN <= 0 {
		return errors.Errorf("PIPELINE_TOP_N deve ser positivo: %d", c.Pipeline.TopN)
	}
	if c.Pipeline.PreviewRows < 0 {
		return errors.Errorf("PIPELINE_PREVIEW_ROWS não pode ser negativo: %d", c.Pipeline.PreviewRows)
	}
	if c.DatasetEviction.TTL <= 0 {
		return errors.Errorf("DATASET_TTL deve ser positivo: %s", c.DatasetEviction.TTL)
	}
	if c.Icons.Enabled && c.Icons.BaseURL == "" {
		return errors.New("ICONS_BASE_URL é obrigatório quando ICONS_ENABLED=true")
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
