package tests

import (
	"context"
	"os"

	tc "github.com/testcontainers/testcontainers-go/modules/compose"
	"github.com/testcontainers/testcontainers-go/wait"
)

// LocalTestFixture manages the docker compose services integration
// tests run against. SKIP_INFRASTRUCTURE=true leaves compose untouched,
// for runs where the services are already up.
type LocalTestFixture struct {
	compose tc.ComposeStack
}

func NewLocalTestFixture(dockerComposePath string, strategies map[string]wait.Strategy) (LocalTestFixture, error) {
	stack, err := tc.NewDockerCompose(dockerComposePath)
	if err != nil {
		return LocalTestFixture{}, err
	}

	var composeStack tc.ComposeStack = stack
	for serviceName, strategy := range strategies {
		composeStack = composeStack.WaitForService(serviceName, strategy)
	}

	return LocalTestFixture{compose: composeStack}, nil
}

func (f *LocalTestFixture) Start(ctx context.Context) error {
	if skip := os.Getenv("SKIP_INFRASTRUCTURE"); skip == "true" {
		return nil
	}

	return f.compose.Up(ctx, tc.Wait(true))
}

func (f *LocalTestFixture) Stop(ctx context.Context) error {
	if skip := os.Getenv("SKIP_INFRASTRUCTURE"); skip == "true" {
		return nil
	}

	return f.compose.Down(ctx)
}
