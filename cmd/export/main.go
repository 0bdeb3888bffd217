// Command export dumps the client inquiry list to an XLSX file without
// going through the HTTP API. Useful for backups and one-off reports.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/MPA-Digital-Solutions/TechMedis/config"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/repository"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/db"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/export"
)

func main() {
	outPath := fmt.Sprintf("contactos-%s.xlsx", time.Now().Format("2006-01-02"))
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	clientRepo := repository.NewClientRepository(db.GetDB())

	clients, err := clientRepo.FindAll()
	if err != nil {
		log.Fatal("Failed to fetch clients:", err)
	}

	f, err := os.Create(outPath)
	if err != nil {
		log.Fatal("Failed to create output file:", err)
	}
	defer f.Close()

	if err := export.WriteClientsXLSX(f, clients); err != nil {
		log.Fatal("Failed to write export:", err)
	}

	fmt.Printf("Exported %d clients to %s\n", len(clients), outPath)
}
