//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/joho/godotenv"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Generate regenerates mocks. Requires mockgen on PATH.
func Generate() error {
	if _, err := exec.LookPath("mockgen"); err != nil {
		fmt.Println(">> mockgen not found; install with:")
		fmt.Println("   go install github.com/golang/mock/mockgen@v1.6.0")
		return err
	}
	fmt.Println(">> go generate ./...")
	return sh.Run("go", "generate", "./...")
}

// Build compiles the server to ./bin/portfolio and the contact CLI to ./bin/contact.
func Build() error {
	mg.Deps(Tidy)
	fmt.Println(">> Building server binary...")
	if err := sh.Run("go", "build", "-o", "bin/portfolio", "."); err != nil {
		return err
	}
	fmt.Println(">> Building contact CLI...")
	return sh.Run("go", "build", "-o", "bin/contact", "./cmd/contact")
}

// Run builds then executes the server.
func Run() error {
	mg.Deps(Build)
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf(">> Starting server on :%s ...\n", port)
	return sh.RunV("./bin/portfolio")
}

// Tidy runs go mod tidy.
func Tidy() error {
	fmt.Println(">> go mod tidy...")
	return sh.Run("go", "mod", "tidy")
}

// Test runs all unit tests with the race detector.
func Test() error {
	fmt.Println(">> Running tests...")
	return sh.RunV("go", "test", "-race", "./...")
}

// Cover writes coverage.out and prints a per-function summary.
func Cover() error {
	if err := sh.RunV("go", "test", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func=coverage.out")
}

// Lint runs golangci-lint if available.
func Lint() error {
	if _, err := exec.LookPath("golangci-lint"); err != nil {
		fmt.Println(">> golangci-lint not found; skipping.")
		return nil
	}
	return sh.Run("golangci-lint", "run", "./...")
}

// Clean removes build artifacts, coverage output and the local analytics DB.
func Clean() error {
	fmt.Println(">> Cleaning...")
	os.Remove("coverage.out")
	db := os.Getenv("DB_PATH")
	if db == "" {
		db = "portfolio.db"
	}
	os.Remove(db)
	return os.RemoveAll("bin")
}

func init() {
	if err := godotenv.Load(); err != nil {
		fmt.Println(">> no .env file, using environment")
	}
}
