package workflow

import (
	"context"
	"strings"

	"github.com/alwitt/routedesk/records"
)

// Titles notification titles of an entity
type Titles struct {
	LoadFailure   string
	CreateSuccess string
	CreateFailure string
	UpdateSuccess string
	UpdateFailure string
	DeleteSuccess string
	DeleteFailure string
}

// Entity describes a managed collection to the workflows
type Entity struct {
	Collection records.Collection
	// Noun singular display noun
	Noun string
	// ListPath path of the collection's list view
	ListPath string
	// CreatePath path of the new record form
	CreatePath string
	// EditPath path of the edit form; "{id}" is replaced with the record ID
	EditPath string
	Titles   Titles
}

// EditPathOf the edit form path of one record
func (e Entity) EditPathOf(id string) string {
	return strings.ReplaceAll(e.EditPath, "{id}", id)
}

// RouteEntity the route collection
var RouteEntity = Entity{
	Collection: records.CollectionRoutes,
	Noun:       "ruta",
	ListPath:   "/view-routes",
	CreatePath: "/add-route",
	EditPath:   "/update-route/{id}",
	Titles: Titles{
		LoadFailure:   "Error al cargar la ruta",
		CreateSuccess: "Ruta agregada con éxito",
		CreateFailure: "Error al agregar la ruta",
		UpdateSuccess: "Ruta actualizada con éxito",
		UpdateFailure: "Error al actualizar la ruta",
		DeleteSuccess: "Ruta eliminada con éxito",
		DeleteFailure: "Error al eliminar la ruta",
	},
}

// UserEntity the user collection
var UserEntity = Entity{
	Collection: records.CollectionUsers,
	Noun:       "usuario",
	ListPath:   "/view-users",
	CreatePath: "/add-user",
	EditPath:   "/update-user/{id}",
	Titles: Titles{
		LoadFailure:   "Error al cargar el usuario",
		CreateSuccess: "Usuario agregado con éxito",
		CreateFailure: "Error al agregar el usuario",
		UpdateSuccess: "Usuario actualizado con éxito",
		UpdateFailure: "Error al actualizar el usuario",
		DeleteSuccess: "Usuario eliminado con éxito",
		DeleteFailure: "Error al eliminar el usuario",
	},
}

// Navigator receives the navigation effects of the workflows
type Navigator interface {
	/*
		Navigate move the user to a path

			@param ctx context.Context - execution context
			@param path string - target path
	*/
	Navigate(ctx context.Context, path string)
}

// NavigatorFunc adapts a function into a Navigator
type NavigatorFunc func(ctx context.Context, path string)

// Navigate move the user to a path
func (f NavigatorFunc) Navigate(ctx context.Context, path string) {
	f(ctx, path)
}
