// This file is a helper for running tests with testcontainers.
// It is used by the integration tests in the database package and by the
// standalone cmd/testcontainers executable.
// Expects environment variables to be loaded from .env files.
//

package testhelpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/localnerve/franchisedb/internal/config"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testDBName     = "franchises"
	testDBUser     = "franchises"
	testDBPassword = "franchises-pass"
	dbNetworkAlias = "franchisedb-database"
)

type TestContainers struct {
	Network     *testcontainers.DockerNetwork
	DBContainer testcontainers.Container
	// Config connects to DBContainer from the host running the tests
	Config *config.Config
}

func (tc *TestContainers) Terminate(t *testing.T) {
	ctx := context.Background()
	if tc.DBContainer != nil {
		if err := tc.DBContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate database: %v", err)
		}
	}
	if tc.Network != nil {
		if err := tc.Network.Remove(ctx); err != nil {
			logMessage(t, "Failed to remove network: %v", err)
		}
	}
}

// CreateDBTestContainer starts a database container of dbType (postgres or
// mariadb/mysql, postgres when empty) and returns a config that reaches it.
// DB_IMAGE overrides the default image.
func CreateDBTestContainer(t *testing.T, dbType string) (*TestContainers, error) {
	ctx := context.Background()
	testContainers := &TestContainers{}

	if dbType == "" || dbType == "sqlite" {
		dbType = "postgres"
	}

	spec, err := dbContainerSpec(dbType)
	if err != nil {
		return nil, err
	}

	// Create a network
	nw, err := network.New(ctx)
	if err != nil {
		exitWithError(t, err, "Failed to create network")
	}
	testContainers.Network = nw
	networkName := nw.Name

	tcpDbPort, err := nat.NewPort("tcp", spec.port)
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to create DB port")
	}

	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        spec.image,
			ExposedPorts: []string{string(tcpDbPort)},
			Env:          spec.env,
			WaitingFor:   spec.waitFor(tcpDbPort),
			Networks:     []string{networkName},
			NetworkAliases: map[string][]string{
				networkName: {dbNetworkAlias},
			},
			// Throwaway data directory in memory
			HostConfigModifier: func(hc *container.HostConfig) {
				hc.Tmpfs = map[string]string{spec.dataDir: "rw"}
			},
		},
		Started: true,
	})
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to start Database")
	}
	testContainers.DBContainer = dbContainer

	dbHost, err := dbContainer.Host(ctx)
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to get database host")
	}
	dbPort, err := dbContainer.MappedPort(ctx, tcpDbPort)
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to get database port")
	}

	if dbType == "mysql" || dbType == "mariadb" {
		if err := waitForMySQL(dbHost, dbPort); err != nil {
			testContainers.Terminate(t)
			exitWithError(t, err, "MariaDB not ready after 30 seconds")
		}
	}

	testContainers.Config = &config.Config{
		Host:              "127.0.0.1",
		Port:              "8000",
		DBType:            dbType,
		DBHost:            dbHost,
		DBPort:            dbPort.Port(),
		DBDatabase:        testDBName,
		DBUser:            testDBUser,
		DBPassword:        testDBPassword,
		DBConnectionLimit: 5,
		DBLogLevel:        "warn",
		MetricsPrefix:     "franchisedb",
	}

	logMessage(t, "DB_TYPE=%s DB_HOST=%s DB_PORT=%s", dbType, dbHost, dbPort.Port())
	logMessage(t, "Database testcontainer started successfully")
	return testContainers, nil
}

type dbSpec struct {
	image   string
	port    string
	dataDir string
	env     map[string]string
	waitFor func(port nat.Port) wait.Strategy
}

func dbContainerSpec(dbType string) (*dbSpec, error) {
	image := os.Getenv("DB_IMAGE")

	switch dbType {
	case "postgres":
		if image == "" {
			image = "postgres:16-alpine"
		}
		return &dbSpec{
			image:   image,
			port:    "5432",
			dataDir: "/var/lib/postgresql/data",
			env: map[string]string{
				"POSTGRES_PASSWORD": testDBPassword,
				"POSTGRES_USER":     testDBUser,
				"POSTGRES_DB":       testDBName,
			},
			waitFor: func(port nat.Port) wait.Strategy {
				return wait.ForAll(
					wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
					wait.ForListeningPort(port),
				).WithDeadline(60 * time.Second)
			},
		}, nil

	case "mariadb", "mysql":
		if image == "" {
			image = "mariadb:11"
		}
		return &dbSpec{
			image:   image,
			port:    "3306",
			dataDir: "/var/lib/mysql",
			env: map[string]string{
				"MYSQL_ROOT_PASSWORD": testDBPassword + "-root",
				"MYSQL_DATABASE":      testDBName,
				"MYSQL_USER":          testDBUser,
				"MYSQL_PASSWORD":      testDBPassword,
			},
			waitFor: func(port nat.Port) wait.Strategy {
				return wait.ForListeningPort(port).WithStartupTimeout(60 * time.Second)
			},
		}, nil
	}

	return nil, fmt.Errorf("no test container for database type %q", dbType)
}

// waitForMySQL pings until the server accepts logins; the port opens
// before the entrypoint has created the database user.
func waitForMySQL(dbHost string, dbPort nat.Port) error {
	db, err := sql.Open("mysql", fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", testDBUser, testDBPassword, dbHost, dbPort.Port(), testDBName))
	if err != nil {
		return err
	}
	defer db.Close()

	for i := 0; i < 30; i++ {
		if err = db.Ping(); err == nil {
			return nil
		}
		time.Sleep(1 * time.Second)
	}
	return err
}

func exitWithError(t *testing.T, err error, msg string) {
	if t != nil {
		t.Fatalf(msg+": %v", err)
	} else {
		fmt.Printf(msg+": %v\n", err)
		os.Exit(1)
	}
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
