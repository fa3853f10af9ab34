package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/localnerve/franchisedb/internal/testhelpers"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	var dbType string
	flag.StringVar(&dbType, "db", "", "database to run: postgres or mariadb (default DB_TYPE, then postgres)")
	flag.Parse()

	usage := `
Run a franchisedb database testcontainer with the environment variables from the .env file.
The connection settings to use with the server are printed once the database is ready.

Usage:

testcontainers [-h] [-f ENV_FILE_PATH] [-db postgres|mariadb]

ENV_FILE_PATH: path to the .env file

example
  testcontainers -f /path/to/something/.env -db mariadb
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	} else {
		log.Printf("No environment file specified, using current environment variables\n")
	}

	if dbType == "" {
		dbType = os.Getenv("DB_TYPE")
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGTSTP, syscall.SIGQUIT)

	var testContainers *testhelpers.TestContainers
	go func() {
		var err error
		testContainers, err = testhelpers.CreateDBTestContainer(nil, dbType)
		if err != nil {
			log.Fatalf("Failed to create test containers: %v\n", err)
		}
		cfg := testContainers.Config
		log.Printf("Database ready: DB_TYPE=%s DB_HOST=%s DB_PORT=%s DB_DATABASE=%s DB_USER=%s DB_PASSWORD=%s\n",
			cfg.DBType, cfg.DBHost, cfg.DBPort, cfg.DBDatabase, cfg.DBUser, cfg.DBPassword)
	}()

	sig := <-sigs
	log.Printf("\nReceived signal: %v, terminating test containers...\n", sig)
	if testContainers != nil {
		testContainers.Terminate(nil)
	}
}
