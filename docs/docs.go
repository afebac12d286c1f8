// Package docs registers the catalog API description with swag.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Authenticate user and return JWT token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UserLogin"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.LoginResult"}},
                    "400": {"description": "Invalid input", "schema": {"type": "string"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "string"}},
                    "429": {"description": "Too many requests", "schema": {"type": "string"}}
                }
            }
        },
        "/refresh": {
            "post": {
                "tags": ["auth"],
                "summary": "Exchange a refresh token for a new token pair",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.RefreshRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.LoginResult"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "string"}}
                }
            }
        },
        "/categories": {
            "get": {
                "tags": ["categories"],
                "summary": "List categories ordered by name",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Category"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["categories"],
                "summary": "Create a category",
                "parameters": [{"name": "category", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CategoryRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Category"}},
                    "409": {"description": "Slug taken", "schema": {"type": "string"}}
                }
            }
        },
        "/products": {
            "get": {
                "tags": ["products"],
                "summary": "Filter and paginate products",
                "parameters": [
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "string", "name": "category_id", "in": "query"},
                    {"type": "boolean", "name": "featured", "in": "query"},
                    {"type": "boolean", "name": "in_stock", "in": "query"},
                    {"type": "string", "name": "tag", "in": "query"},
                    {"type": "number", "name": "min_price", "in": "query"},
                    {"type": "number", "name": "max_price", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ProductsSearchResult"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["products"],
                "summary": "Create a new product",
                "parameters": [{"name": "product", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.ProductRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Product"}},
                    "400": {"description": "Bad Request", "schema": {"type": "array", "items": {"$ref": "#/definitions/handlers.ProductValidationError"}}}
                }
            }
        },
        "/products/{id}": {
            "get": {
                "tags": ["products"],
                "summary": "Get product by ID",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Product"}}, "404": {"description": "Not found"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["products"],
                "summary": "Replace a product",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "product", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.ProductRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Product"}}}
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["products"],
                "summary": "Update some fields of a product",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "patch", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.ProductPatch"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Product"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["products"],
                "summary": "Delete a product",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "Deleted successfully"}}
            }
        },
        "/products/slug/{slug}": {
            "get": {
                "tags": ["products"],
                "summary": "Get product by slug",
                "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Product"}}}
            }
        },
        "/products/{id}/image": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["products"],
                "summary": "Upload an image for a product",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "file", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.ImageUploadResult"}},
                    "415": {"description": "Not an image", "schema": {"type": "string"}}
                }
            }
        },
        "/products/import": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["import"],
                "summary": "Import products via CSV",
                "consumes": ["multipart/form-data"],
                "parameters": [{"type": "file", "name": "file", "in": "formData", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ImportProductsResult"}}}
            }
        },
        "/catalog/stats": {
            "get": {
                "tags": ["stats"],
                "summary": "Catalog totals for the admin view",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/repo.CatalogStats"}}}
            }
        },
        "/storefront/navbar": {"get": {"tags": ["storefront"], "summary": "Navigation menu and order link", "responses": {"200": {"description": "OK"}}}},
        "/storefront/cta": {"get": {"tags": ["storefront"], "summary": "WhatsApp ordering call to action", "responses": {"200": {"description": "OK"}}}},
        "/storefront/craftsmanship": {"get": {"tags": ["storefront"], "summary": "Craftsmanship process section", "responses": {"200": {"description": "OK"}}}},
        "/storefront/premium-banners": {"get": {"tags": ["storefront"], "summary": "Signature collection banners", "responses": {"200": {"description": "OK"}}}}
    },
    "definitions": {
        "handlers.UserLogin": {"type": "object", "properties": {"username": {"type": "string"}, "password": {"type": "string"}}},
        "handlers.RefreshRequest": {"type": "object", "properties": {"refresh_token": {"type": "string"}}},
        "handlers.LoginResult": {"type": "object", "properties": {"token": {"type": "string"}, "refresh_token": {"type": "string"}}},
        "handlers.CategoryRequest": {"type": "object", "properties": {"name": {"type": "string"}, "slug": {"type": "string"}}},
        "handlers.ProductRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "slug": {"type": "string"},
                "description": {"type": "string"},
                "price": {"type": "number"},
                "category_id": {"type": "string"},
                "in_stock": {"type": "boolean"},
                "featured": {"type": "boolean"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "image_url": {"type": "string"}
            }
        },
        "handlers.ProductValidationError": {"type": "object", "properties": {"field": {"type": "string"}, "description": {"type": "string"}}},
        "handlers.ProductsSearchResult": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/models.Product"}},
                "meta": {"type": "object", "properties": {"total_count": {"type": "integer"}}}
            }
        },
        "handlers.ImageUploadResult": {"type": "object", "properties": {"image_url": {"type": "string"}}},
        "handlers.ImportProductsResult": {
            "type": "object",
            "properties": {
                "imported": {"type": "integer"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/handlers.ProductValidationError"}}
            }
        },
        "models.Category": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "slug": {"type": "string"}}},
        "models.Product": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "slug": {"type": "string"},
                "description": {"type": "string"},
                "price": {"type": "number"},
                "category_id": {"type": "string"},
                "in_stock": {"type": "boolean"},
                "featured": {"type": "boolean"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "image_url": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "models.ProductPatch": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "slug": {"type": "string"},
                "description": {"type": "string"},
                "price": {"type": "number"},
                "category_id": {"type": "string"},
                "in_stock": {"type": "boolean"},
                "featured": {"type": "boolean"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "image_url": {"type": "string"}
            }
        },
        "repo.CatalogStats": {
            "type": "object",
            "properties": {
                "total_products": {"type": "integer"},
                "featured_count": {"type": "integer"},
                "out_of_stock_count": {"type": "integer"},
                "by_category": {"type": "array", "items": {"type": "object"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Klassico Catalog API",
	Description:      "REST API for the Klassico storefront catalog: categories, products, images and home page content.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
