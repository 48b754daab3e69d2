package devops

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// Deployment holds per-deployment settings. The closed weekday is
// configuration, not a constant: which day markets stay shut differs by
// region.
type Deployment struct {
	DSN                 string `yaml:"dsn"`
	ClosedWeekday       string `yaml:"closedWeekday"`       // e.g. "Monday"
	QueryTimeoutSeconds int    `yaml:"queryTimeoutSeconds"` // per evidence query
	MaxConnections      int    `yaml:"maxConnections"`
}

var (
	once    sync.Once
	current Deployment
	loadErr error
)

// LoadDeployment reads settings from the SSM parameter "mandiops/deployment".
// When MANDIOPS_CONFIG points at a local YAML file (dev), that wins and AWS
// is never touched.
func LoadDeployment(ctx context.Context) (Deployment, error) {
	once.Do(func() {
		if path := os.Getenv("MANDIOPS_CONFIG"); path != "" {
			raw, err := os.ReadFile(path)
			if err != nil {
				loadErr = fmt.Errorf("read local config: %w", err)
				return
			}
			loadErr = parse(raw)
			return
		}

		paramName := "mandiops/deployment"

		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			loadErr = fmt.Errorf("load aws config: %w", err)
			return
		}

		client := ssm.NewFromConfig(cfg)

		out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
			Name:           aws.String(paramName),
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			loadErr = fmt.Errorf("get parameter: %w", err)
			return
		}

		loadErr = parse([]byte(*out.Parameter.Value))
	})

	return current, loadErr
}

func parse(raw []byte) error {
	var parsed Deployment
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("unmarshal yaml: %w", err)
	}
	if parsed.DSN == "" {
		parsed.DSN = os.Getenv("DSN")
	}
	if parsed.ClosedWeekday == "" {
		parsed.ClosedWeekday = "Monday"
	}
	if parsed.QueryTimeoutSeconds <= 0 {
		parsed.QueryTimeoutSeconds = 5
	}
	if parsed.MaxConnections <= 0 {
		parsed.MaxConnections = 10
	}
	current = parsed
	return nil
}

// ClosedWeekdayValue maps the configured name to a time.Weekday.
func (d Deployment) ClosedWeekdayValue() (time.Weekday, error) {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if wd.String() == d.ClosedWeekday {
			return wd, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", d.ClosedWeekday)
}

// QueryTimeout is the per-evidence-query budget. A source slower than this
// counts as unavailable, not as a blocker.
func (d Deployment) QueryTimeout() time.Duration {
	return time.Duration(d.QueryTimeoutSeconds) * time.Second
}
