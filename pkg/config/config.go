package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa a configuração da aplicação (leitura via Viper de env e
// opcionalmente de arquivo .env).
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Fabrica FabricaConfig
	Eventos EventosConfig
}

// AppConfig configuração geral da aplicação.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// FabricaConfig parâmetros do chão de fábrica. A sequência de setores, as
// metas diárias e o corte de outlier do tempo de ciclo são configuração
// externa consumida pelo núcleo, não invariantes embutidas.
type FabricaConfig struct {
	Setores         []string       // ordem do fluxo; vazio = sequência padrão
	Metas           map[string]int // meta diária de conclusões por setor
	LimiteCicloDias int            // durações acima disso são lixo de dados
	FusoHorario     string         // ex. America/Recife
}

// EventosConfig fan-out de eventos em tempo real (Kafka).
// Brokers vazio desliga a publicação (fica só o log).
type EventosConfig struct {
	Brokers string // lista host:port separada por vírgula
	Topico  string
}

// DBConfig configuração do PostgreSQL.
// Se DatabaseURL não estiver vazio, é usado como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devolve o DSN: DATABASE_URL se definido, senão o DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devolve o connection string com URL encoding para caracteres especiais.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuração de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuração do servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devolve o endereço de escuta (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lê a configuração de variáveis de ambiente (e opcionalmente de
// arquivo). As env vars têm prioridade. Nomes esperados: APP_ENV, DB_HOST,
// JWT_SECRET, SETORES, METAS_SETOR, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: arquivo de configuração .env
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos erro se não existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "sistemanovofabrica"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "fabrica"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 720),
			Issuer:     getString(v, "JWT_ISSUER", "sistemanovofabrica"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Fabrica: FabricaConfig{
			Setores:         getLista(v, "SETORES"),
			Metas:           getMetas(v, "METAS_SETOR"),
			LimiteCicloDias: getInt(v, "LIMITE_CICLO_DIAS", 15),
			FusoHorario:     getString(v, "FUSO_HORARIO", "America/Recife"),
		},
		Eventos: EventosConfig{
			Brokers: getString(v, "KAFKA_BROKERS", ""),
			Topico:  getString(v, "KAFKA_TOPICO", "fabrica.atividades"),
		},
	}

	return cfg, nil
}

// getLista lê uma lista separada por vírgula ("Gabarito,Impressao,...").
func getLista(v *viper.Viper, key string) []string {
	raw := getString(v, key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// getMetas lê metas por setor no formato "Gabarito=10,Impressao=12".
// Ausente devolve as metas padrão da fábrica.
func getMetas(v *viper.Viper, key string) map[string]int {
	metas := map[string]int{
		"Gabarito":  10,
		"Impressao": 12,
		"Batida":    10,
		"Costura":   8,
		"Embalagem": 8,
	}
	raw := getString(v, key, "")
	if raw == "" {
		return metas
	}
	for _, par := range strings.Split(raw, ",") {
		kv := strings.SplitN(strings.TrimSpace(par), "=", 2)
		if len(kv) != 2 {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(kv[1]))
		if err != nil || n <= 0 {
			continue
		}
		metas[strings.TrimSpace(kv[0])] = n
	}
	return metas
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
