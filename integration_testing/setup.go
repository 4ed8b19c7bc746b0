package integration_testing

import (
	"context"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

// Suite owns the docker resources shared by all integration tests.
type Suite struct {
	RedisPort  string
	dockerPool *dockertest.Pool
	teardown   []func()
}

func newSuite() (*Suite, error) {
	var err error
	suite := &Suite{
		teardown: make([]func(), 0),
	}

	// uses a sensible default on windows (tcp/http) and linux/osx (socket)
	suite.dockerPool, err = dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("could not create new dockertest pool: %w", err)
	}

	// uses pool to try to connect to Docker
	if err = suite.dockerPool.Client.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping dockertest pool: %w", err)
	}

	suite.RedisPort, err = suite.redisSetup()
	if err != nil {
		suite.cleanup()
		return nil, fmt.Errorf("failed to setup redis: %w", err)
	}

	return suite, nil
}

func (s *Suite) cleanup() {
	for _, teardown := range s.teardown {
		teardown()
	}
}

func (s *Suite) redisSetup() (string, error) {
	redisResource, err := s.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Name:       "athletepro-it-redis",
		Tag:        "7.2",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	if err != nil {
		return "", fmt.Errorf("run redis: %w", err)
	}

	s.teardown = append(s.teardown, func() {
		if err := s.dockerPool.Purge(redisResource); err != nil {
			log.Printf("purge redis: %s", err)
		}
	})

	redisPort := redisResource.GetPort("6379/tcp")
	err = s.dockerPool.Retry(func() error {
		rdb := redis.NewClient(&redis.Options{
			Addr: "localhost:" + redisPort,
		})
		defer rdb.Close()
		return rdb.Ping(context.Background()).Err()
	})
	if err != nil {
		return "", fmt.Errorf("wait for redis: %w", err)
	}

	return redisPort, nil
}
