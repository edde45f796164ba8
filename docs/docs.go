// Package docs is generated by swag from the handler annotations.
// Regenerate with: swag init -g cmd/api/main.go
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
        "/auth/signup": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign up",
                "parameters": [
                    {"description": "Account details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.signUpRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.authResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"description": "Login credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.authResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/v1/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.meResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/v1/lots": {
            "get": {
                "produces": ["application/json"],
                "tags": ["lots"],
                "summary": "List lots",
                "parameters": [
                    {"type": "string", "description": "Substring of name or roaster", "name": "search", "in": "query"},
                    {"type": "string", "description": "Exact country", "name": "country", "in": "query"},
                    {"type": "string", "description": "Exact roast level", "name": "roast_level", "in": "query"},
                    {"type": "string", "description": "rating (default) or popularity", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.catalogResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["lots"],
                "summary": "Create a lot",
                "parameters": [
                    {"type": "string", "description": "Replay protection key", "name": "Idempotency-Key", "in": "header"},
                    {"description": "Lot fields", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ports.CreateLotInput"}},
                    {"type": "file", "description": "Lot image", "name": "image", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "idempotent replay", "schema": {"$ref": "#/definitions/handler.createLotResponse"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.createLotResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/v1/lots/import": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["lots"],
                "summary": "Import lots",
                "parameters": [
                    {"type": "file", "description": "JSON import file", "name": "file", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.importResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/v1/lots/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["lots"],
                "summary": "Get a lot",
                "parameters": [
                    {"type": "string", "description": "Lot ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.lotResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/v1/reviews": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reviews"],
                "summary": "Submit a review",
                "parameters": [
                    {"description": "Review", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ports.SubmitReviewInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.successResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/v1/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["profile"],
                "summary": "Get my profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.profileResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["profile"],
                "summary": "Update my profile",
                "parameters": [
                    {"description": "Profile", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ports.UpdateProfileInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.successResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "fields": {"type": "array", "items": {"$ref": "#/definitions/domain.FieldViolation"}}
            }
        },
        "domain.FieldViolation": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "rule": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "domain.Identity": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "domain.CatalogEntry": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "roaster": {"type": "string"},
                "country": {"type": "string", "x-nullable": true},
                "region": {"type": "string", "x-nullable": true},
                "variety": {"type": "string", "x-nullable": true},
                "process": {"type": "string", "x-nullable": true},
                "roast_level": {"type": "string", "x-nullable": true},
                "flavor_notes": {"type": "string", "x-nullable": true},
                "image_url": {"type": "string", "x-nullable": true},
                "created_at": {"type": "string"},
                "avg_rating": {"type": "number", "x-nullable": true},
                "reviews_count": {"type": "integer"}
            }
        },
        "domain.Review": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "lot_id": {"type": "string"},
                "user_id": {"type": "string"},
                "rating": {"type": "integer"},
                "comment": {"type": "string", "x-nullable": true},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "handler.signUpRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "nickname": {"type": "string"}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.successResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}}
        },
        "handler.authResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/domain.User"}
            }
        },
        "handler.meResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "user": {"$ref": "#/definitions/domain.Identity"},
                "is_admin": {"type": "boolean"}
            }
        },
        "handler.createLotResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "lot_id": {"type": "string"},
                "already_existed": {"type": "boolean"}
            }
        },
        "handler.importResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "imported": {"type": "integer"},
                "failed": {"type": "integer"},
                "errors": {"type": "array", "items": {"type": "string"}},
                "errors_truncated": {"type": "boolean"}
            }
        },
        "handler.catalogResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "lots": {"type": "array", "items": {"$ref": "#/definitions/domain.CatalogEntry"}},
                "facets": {
                    "type": "object",
                    "properties": {
                        "countries": {"type": "array", "items": {"type": "string"}},
                        "roast_levels": {"type": "array", "items": {"type": "string"}}
                    }
                }
            }
        },
        "handler.lotResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "lot": {"$ref": "#/definitions/domain.CatalogEntry"},
                "reviews": {"type": "array", "items": {"$ref": "#/definitions/domain.Review"}},
                "my_review": {"$ref": "#/definitions/domain.Review"}
            }
        },
        "handler.profileResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "profile": {
                    "type": "object",
                    "properties": {
                        "id": {"type": "string"},
                        "nickname": {"type": "string"},
                        "updated_at": {"type": "string"}
                    }
                },
                "reviews": {"type": "array", "items": {"$ref": "#/definitions/domain.Review"}}
            }
        },
        "ports.CreateLotInput": {
            "type": "object",
            "required": ["name", "roaster"],
            "properties": {
                "name": {"type": "string", "maxLength": 200},
                "roaster": {"type": "string", "maxLength": 200},
                "country": {"type": "string", "maxLength": 100},
                "region": {"type": "string", "maxLength": 100},
                "variety": {"type": "string", "maxLength": 100},
                "process": {"type": "string", "maxLength": 100},
                "roast_level": {"type": "string", "maxLength": 50},
                "flavor_notes": {"type": "string", "maxLength": 1000},
                "image_url": {"type": "string"}
            }
        },
        "ports.SubmitReviewInput": {
            "type": "object",
            "required": ["lot_id"],
            "properties": {
                "lot_id": {"type": "string"},
                "review_id": {"type": "string"},
                "rating": {"type": "integer", "minimum": 1, "maximum": 5},
                "comment": {"type": "string", "maxLength": 2000}
            }
        },
        "ports.UpdateProfileInput": {
            "type": "object",
            "required": ["nickname"],
            "properties": {
                "user_id": {"type": "string"},
                "nickname": {"type": "string", "maxLength": 100}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Coffee Catalog API",
	Description:      "Specialty coffee lots, reviews and profiles.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
