// Package docs registers the OpenAPI document served under /swagger.
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
        "/api/v1/auth/login": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log in",
                "parameters": [
                    {"type": "string", "description": "Email", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.TokenResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}
                }
            }
        },
        "/api/v1/auth/password-reset/request": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Request a password reset code",
                "parameters": [
                    {"description": "Account email", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.PasswordResetRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.PasswordResetResponse"}}
                }
            }
        },
        "/api/v1/auth/password-reset/verify": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Check a password reset code",
                "parameters": [
                    {"description": "Email and code", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.VerifyResetCodeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.PasswordResetResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}
                }
            }
        },
        "/api/v1/auth/password-reset/confirm": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Set a new password with a reset code",
                "parameters": [
                    {"description": "Email, code and new password", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.ResetPasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.PasswordResetResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}
                }
            }
        },
        "/api/v1/users": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Register a user",
                "parameters": [
                    {"description": "New user", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}
                }
            }
        },
        "/api/v1/users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}}
                }
            }
        },
        "/api/v1/pymes": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Pymes"],
                "summary": "Create the caller's pyme",
                "parameters": [
                    {"description": "Company data", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.CreatePymeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Pyme"}}
                }
            }
        },
        "/api/v1/pymes/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Pymes"],
                "summary": "Get a pyme",
                "parameters": [{"type": "string", "description": "Pyme ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Pyme"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}
                }
            }
        },
        "/api/v1/credits": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Credits"],
                "summary": "List the caller's credits",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Credit"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Credits"],
                "summary": "Request a credit",
                "parameters": [
                    {"description": "Credit application", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.CreateCreditRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.CreditResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}, "message": {"type": "string"}}
        },
        "models.TokenResponse": {
            "type": "object",
            "properties": {"access_token": {"type": "string"}, "token_type": {"type": "string"}}
        },
        "models.PasswordResetRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}}
        },
        "models.VerifyResetCodeRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "reset_code": {"type": "string"}}
        },
        "models.ResetPasswordRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "reset_code": {"type": "string"}, "new_password": {"type": "string"}}
        },
        "models.PasswordResetResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "reset_code": {"type": "string"}, "expires_in_seconds": {"type": "integer"}}
        },
        "models.RegisterRequest": {
            "type": "object",
            "properties": {"first_name": {"type": "string"}, "last_name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}}
        },
        "models.User": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "first_name": {"type": "string"}, "last_name": {"type": "string"}, "email": {"type": "string"}, "role": {"type": "string"}, "is_active": {"type": "boolean"}, "created_at": {"type": "string"}}
        },
        "models.CreatePymeRequest": {
            "type": "object",
            "properties": {"name_company": {"type": "string"}, "cuit": {"type": "string"}, "legal_form": {"type": "string"}, "activity": {"type": "string"}, "corporate_email": {"type": "string"}, "phone_number": {"type": "string"}, "country": {"type": "string"}, "state": {"type": "string"}, "city": {"type": "string"}, "address": {"type": "string"}, "postal_code": {"type": "string"}}
        },
        "models.Pyme": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "user_id": {"type": "string"}, "name_company": {"type": "string"}, "cuit": {"type": "string"}, "legal_form": {"type": "string"}, "activity": {"type": "string"}, "corporate_email": {"type": "string"}, "phone_number": {"type": "string"}, "country": {"type": "string"}, "state": {"type": "string"}, "city": {"type": "string"}, "address": {"type": "string"}, "postal_code": {"type": "string"}, "created_at": {"type": "string"}}
        },
        "models.CreateCreditRequest": {
            "type": "object",
            "properties": {"pyme_id": {"type": "string"}, "amount": {"type": "number"}, "employees": {"type": "integer"}, "annual_sales": {"type": "number"}, "fiscal_year_closing": {"type": "integer"}, "total_assets": {"type": "number"}, "pyme": {"$ref": "#/definitions/models.CreatePymeRequest"}}
        },
        "models.Credit": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "pyme_id": {"type": "string"}, "amount": {"type": "number"}, "employees": {"type": "integer"}, "annual_sales": {"type": "number"}, "fiscal_year_closing": {"type": "integer"}, "total_assets": {"type": "number"}, "status": {"type": "string", "enum": ["pending", "in_progress", "approved", "rejected"]}, "created_at": {"type": "string"}, "updated_at": {"type": "string"}}
        },
        "models.CreditResponse": {
            "type": "object",
            "properties": {"credit": {"$ref": "#/definitions/models.Credit"}, "pyme_created": {"type": "boolean"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pymes Credit API",
	Description:      "Registration, authentication and credit applications for small and medium companies.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
