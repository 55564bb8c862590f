package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"LocalLearn/internal/ai"
	"LocalLearn/internal/config"
	"LocalLearn/internal/service/tutor"
)

const testPrompt = "Hello, just testing the API key. Please respond with 'API key works!'"

// Проверка ключа провайдера перед запуском приложения: наличие, формат, один тестовый запрос.
func main() {
	cfg := config.NewConfig()

	ctx, cancel := context.WithTimeoutCause(context.Background(), 30*time.Second, errors.New("api key check timeout"))
	defer cancel()

	fmt.Println("Testing API key for LocalLearn...")
	fmt.Println(strings.Repeat("=", 50))
	ok := check(ctx, cfg.TextProvider, cfg.APIKey(), cfg.TextModel, ai.NewClient, os.Stdout)
	fmt.Println(strings.Repeat("=", 50))
	if !ok {
		fmt.Println("Please fix the API key issues before running the app.")
		os.Exit(1)
	}
	fmt.Println("Your API key is working! You can now run the LocalLearn app.")
}

func check(ctx context.Context, provider, key, model string, newClient tutor.ClientFactory, out io.Writer) bool {
	if err := tutor.ValidateCredential(provider, key); err != nil {
		var cfgErr *tutor.ConfigurationError
		if errors.As(err, &cfgErr) {
			fmt.Fprintf(out, "ERROR: %s not found in environment variables\n", cfgErr.Variable)
			fmt.Fprintf(out, "Please create a .env file with: %s=your_api_key_here\n", cfgErr.Variable)
			return false
		}
		fmt.Fprintf(out, "Found API key: %s\n", mask(key))
		fmt.Fprintf(out, "ERROR: %v\n", err)
		return false
	}
	fmt.Fprintf(out, "Found API key: %s\n", mask(key))
	fmt.Fprintln(out, "API key format is valid")

	client, err := newClient(ctx, provider, key, model)
	if err != nil {
		fmt.Fprintf(out, "ERROR: failed to create client: %v\n", err)
		return false
	}
	resp, err := client.Complete(ctx, "", testPrompt)
	if err != nil {
		fmt.Fprintf(out, "ERROR: API key validation failed: %v\n", err)
		fmt.Fprintln(out, "Troubleshooting tips:")
		fmt.Fprintln(out, "1. Make sure you copied the API key correctly")
		fmt.Fprintln(out, "2. Check that the key has access to the selected model")
		fmt.Fprintln(out, "3. Try generating a new API key")
		fmt.Fprintln(out, "4. Make sure your .env file is in the working directory")
		return false
	}
	resp = strings.TrimSpace(resp)
	if resp == "" {
		fmt.Fprintln(out, "ERROR: API returned empty response")
		return false
	}
	fmt.Fprintln(out, "API key test successful!")
	fmt.Fprintf(out, "Response: %s\n", resp)
	return true
}

// mask первые 10 и последние 5 символов ключа; короткие ключи: только начало.
func mask(key string) string {
	r := []rune(strings.TrimSpace(key))
	if len(r) >= 20 {
		return string(r[:10]) + "..." + string(r[len(r)-5:])
	}
	return string(r[:len(r)/2]) + "..."
}
