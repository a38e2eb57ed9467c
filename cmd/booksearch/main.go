// Command booksearch queries the Google Books API for a free-text search and
// prints the matching titles and authors.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"

	"litlog/pkg/books"
)

func main() {
	viper.SetDefault("BOOKS_API_URL", books.DefaultBaseURL)
	viper.SetDefault("BOOKS_API_KEY", "")
	viper.AutomaticEnv()

	query := strings.TrimSpace(strings.Join(os.Args[1:], " "))
	if query == "" {
		fmt.Print("search: ")
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			query = strings.TrimSpace(scanner.Text())
		}
	}
	if query == "" {
		log.Fatal("no search query given")
	}

	client := books.NewClient(viper.GetString("BOOKS_API_URL"), viper.GetString("BOOKS_API_KEY"))
	volumes, err := client.Search(context.Background(), query)
	if err != nil {
		log.Fatalf("Search failed: %v", err)
	}

	fmt.Printf("Found %d books:\n", len(volumes))
	for _, v := range volumes {
		fmt.Printf("Title: %s, Authors: %s\n", v.Title, strings.Join(v.Authors, ", "))
	}
}
