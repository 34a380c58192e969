package main

import (
	"github.com/maze02/marvel-characters-app/internal/app"
)

func main() {
	app.New(
		app.CatalogModule(),
		app.FavoritesModule(),
		app.ProxyModule(),
	).Run()
}
