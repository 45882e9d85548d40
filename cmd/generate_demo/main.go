// Command generate_demo creates a demo library with public domain books.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"bytes"
	"context"
	"flag"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"

	"github.com/mrlokans/novelnest/internal/database"
	"github.com/mrlokans/novelnest/internal/database/books"
	"github.com/mrlokans/novelnest/internal/database/bucketlist"
	"github.com/mrlokans/novelnest/internal/entities"
)

const defaultDemoDatabasePath = "./demo/demo.db"

type demoBook struct {
	Title      string
	Author     string
	Genre      string
	Year       int
	Rating     float64
	Status     entities.ReadingStatus
	Cover      color.RGBA
	BucketList bool
}

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo library at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	bookRepo := books.NewRepository(db.DB)
	bucketRepo := bucketlist.NewRepository(db.DB)

	for _, b := range getPublicDomainBooks() {
		in := books.NewBook{
			Title:  b.Title,
			Author: b.Author,
			Status: b.Status,
		}
		genre, year := b.Genre, b.Year
		in.Genre = &genre
		in.Year = &year
		if b.Rating > 0 {
			rating := b.Rating
			in.Rating = &rating
		}
		if cover, err := solidCover(b.Cover); err != nil {
			log.Printf("Failed to render cover for %s: %v", b.Title, err)
		} else {
			in.Image = cover
		}

		book, err := bookRepo.AddBook(ctx, in)
		if err != nil {
			log.Printf("Failed to save book %s: %v", b.Title, err)
			continue
		}
		log.Printf("Saved: %s by %s", book.Title, book.Author)

		if b.BucketList {
			if _, err := bucketRepo.AddToBucketList(ctx, book.ID); err != nil {
				log.Printf("Failed to add %s to bucket list: %v", book.Title, err)
			}
		}
	}

	total, _ := bookRepo.CountBooks(ctx)
	bucketSize, _ := bucketRepo.CountEntries(ctx)
	log.Printf("Demo library generated: %d books, %d on the bucket list", total, bucketSize)
}

// solidCover renders a small single-colour PNG to stand in for a cover.
func solidCover(c color.RGBA) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, 60, 90))
	for y := 0; y < 90; y++ {
		for x := 0; x < 60; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func getPublicDomainBooks() []demoBook {
	return []demoBook{
		{
			Title: "Pride and Prejudice", Author: "Jane Austen", Genre: "Classic", Year: 1913,
			Rating: 5, Status: entities.StatusCompleted, Cover: color.RGBA{R: 176, G: 58, B: 46, A: 255},
		},
		{
			Title: "Frankenstein", Author: "Mary Shelley", Genre: "Gothic", Year: 1931,
			Rating: 4, Status: entities.StatusCompleted, Cover: color.RGBA{R: 40, G: 55, B: 71, A: 255},
		},
		{
			Title: "The Time Machine", Author: "H. G. Wells", Genre: "Science Fiction", Year: 1922,
			Status: entities.StatusReading, Cover: color.RGBA{R: 118, G: 68, B: 138, A: 255},
		},
		{
			Title: "The War of the Worlds", Author: "H. G. Wells", Genre: "Science Fiction", Year: 1927,
			Status: entities.StatusUnread, Cover: color.RGBA{R: 160, G: 64, B: 0, A: 255}, BucketList: true,
		},
		{
			Title: "The Picture of Dorian Gray", Author: "Oscar Wilde", Genre: "Gothic", Year: 1926,
			Rating: 4, Status: entities.StatusCompleted, Cover: color.RGBA{R: 20, G: 90, B: 50, A: 255},
		},
		{
			Title: "Moby-Dick", Author: "Herman Melville", Genre: "Adventure", Year: 1926,
			Status: entities.StatusUnread, Cover: color.RGBA{R: 21, G: 67, B: 96, A: 255}, BucketList: true,
		},
		{
			Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", Genre: "Classic", Year: 1925,
			Rating: 3, Status: entities.StatusCompleted, Cover: color.RGBA{R: 212, G: 172, B: 13, A: 255},
		},
		{
			Title: "Dracula", Author: "Bram Stoker", Genre: "Gothic", Year: 1927,
			Status: entities.StatusUnread, Cover: color.RGBA{R: 100, G: 30, B: 22, A: 255}, BucketList: true,
		},
	}
}
