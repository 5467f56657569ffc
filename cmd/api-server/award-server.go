package main

import (
	"log"
	"net/http"
	"os"

	"awards/db"
	"awards/db/migrations"
	"awards/internal/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func main() {
	connString := os.Getenv("POSTGRES_CONN")
	if connString == "" {
		log.Fatal("POSTGRES_CONN env variable is not set")
	}

	dbConn, err := sqlx.Connect("postgres", connString)
	if err != nil {
		log.Fatalf("Cannot connect to DB: %v", err)
	}
	defer dbConn.Close()

	migrations.Run()

	store := db.NewStorage(dbConn)
	h := handlers.NewHandler(store)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", h.PingHandler)
		// присуждение
		r.Get("/tenders/{tenderId}/award", h.GetAwardHandler)
		r.Put("/tenders/{tenderId}/award/items/{lineItemId}/winner", h.OverrideWinnerHandler)
		r.Get("/tenders/{tenderId}/award/winners", h.GetWinnersHandler)
		// распределение доставки
		r.Get("/tenders/{tenderId}/award/delivery-split/{supplierId}", h.ProposeDeliverySplitHandler)
		r.Put("/tenders/{tenderId}/award/delivery-split/{supplierId}", h.AcceptDeliverySplitHandler)
		// примечания
		r.Get("/tenders/{tenderId}/award/items/{lineItemId}/notes/{supplierId}", h.GetNoteHandler)
		r.Put("/tenders/{tenderId}/award/items/{lineItemId}/notes/{supplierId}", h.SaveNoteHandler)
	})

	serverAddr := os.Getenv("SERVER_ADDRESS")
	if serverAddr == "" {
		serverAddr = "0.0.0.0:8080"
	}

	log.Printf("Starting server on %s", serverAddr)
	log.Fatal(http.ListenAndServe(serverAddr, r))
}
