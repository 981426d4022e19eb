// Package procure registers the OpenAPI document served at /swagger/.
package procure

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/v1/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate",
                "description": "Exchanges username and password for a bearer access token.",
                "responses": {
                    "200": {"description": "Access token"},
                    "401": {"description": "Bad credentials or unverified email"},
                    "403": {"description": "Account awaiting approval"}
                }
            }
        },
        "/v1/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register an account",
                "responses": {
                    "201": {"description": "Created account"},
                    "409": {"description": "Username already taken"}
                }
            }
        },
        "/v1/auth/verify": {
            "get": {
                "tags": ["Auth"],
                "summary": "Confirm email address",
                "parameters": [
                    {"name": "token", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Email confirmed"},
                    "400": {"description": "Missing, unknown or expired token"}
                }
            }
        },
        "/v1/bootstrap": {
            "post": {
                "tags": ["System"],
                "summary": "Bootstrap the system",
                "responses": {
                    "201": {"description": "Created admin"},
                    "401": {"description": "Bad bootstrap token"},
                    "409": {"description": "Already bootstrapped"}
                }
            }
        },
        "/v1/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List users",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "List of users"}}
            }
        },
        "/v1/users/{id}": {
            "get": {
                "tags": ["Users"],
                "summary": "Get a user",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "User"}, "404": {"description": "Unknown user"}}
            },
            "patch": {
                "tags": ["Users"],
                "summary": "Update a user",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Updated"}}
            },
            "delete": {
                "tags": ["Users"],
                "summary": "Delete a user",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "204": {"description": "Deleted"},
                    "409": {"description": "User referenced by audit records"}
                }
            }
        },
        "/v1/users/{id}/approve": {
            "post": {
                "tags": ["Users"],
                "summary": "Approve a user",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Approved"}, "400": {"description": "Invalid role"}}
            }
        },
        "/v1/users/{id}/categories": {
            "put": {
                "tags": ["Users"],
                "summary": "Set a user's business categories",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Updated"}}
            }
        },
        "/v1/categories": {
            "get": {
                "tags": ["Categories"],
                "summary": "List business categories",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "List of categories"}}
            },
            "post": {
                "tags": ["Categories"],
                "summary": "Create a business category",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Name already in use"}}
            }
        },
        "/v1/categories/{id}": {
            "put": {
                "tags": ["Categories"],
                "summary": "Update a business category",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Updated"}}
            },
            "delete": {
                "tags": ["Categories"],
                "summary": "Delete a business category",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Deleted"}}
            }
        },
        "/v1/projects": {
            "get": {
                "tags": ["Projects"],
                "summary": "List projects",
                "description": "Sweeps expired projects to Ended before listing.",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "List of projects"}}
            },
            "post": {
                "tags": ["Projects"],
                "summary": "Create a project",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid project"}}
            }
        },
        "/v1/projects/{id}": {
            "get": {
                "tags": ["Projects"],
                "summary": "Get a project",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "Project"}, "404": {"description": "Unknown project"}}
            }
        },
        "/v1/projects/{id}/invitations": {
            "get": {
                "tags": ["Projects"],
                "summary": "List a project's invitations",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "Invitations"}}
            },
            "post": {
                "tags": ["Projects"],
                "summary": "Invite a supplier",
                "description": "Idempotent: re-inviting an already invited supplier is a no-op.",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "204": {"description": "Invited (or already invited)"},
                    "409": {"description": "Project not active"},
                    "422": {"description": "Invitee is not a supplier"}
                }
            }
        },
        "/v1/projects/{id}/bids": {
            "get": {
                "tags": ["Bids"],
                "summary": "List a project's bids",
                "description": "Suppliers see only their own ledger; staff see nothing until the project closes.",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "Bids"},
                    "409": {"description": "Bids sealed while active"}
                }
            },
            "post": {
                "tags": ["Bids"],
                "summary": "Submit a bid",
                "description": "Appends to the ledger; the latest submission is the supplier's current bid.",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "201": {"description": "Bid recorded"},
                    "403": {"description": "Not invited"},
                    "409": {"description": "Bidding closed"}
                }
            }
        },
        "/v1/projects/{id}/open": {
            "post": {
                "tags": ["Opening"],
                "summary": "Open a project's bids",
                "description": "At-most-once transition to Opened; repeated calls re-download the same record.",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "Opening record"},
                    "403": {"description": "Caller may not open this project"},
                    "409": {"description": "Project has not ended"}
                }
            }
        },
        "/v1/projects/{id}/record": {
            "get": {
                "tags": ["Opening"],
                "summary": "Download an opening record",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "required": false, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Opening record"},
                    "409": {"description": "Project not opened"}
                }
            }
        },
        "/v1/projects/{id}/cancel": {
            "post": {
                "tags": ["Projects"],
                "summary": "Cancel a project",
                "description": "Permitted only while the project is Active and has zero bids.",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "204": {"description": "Cancelled"},
                    "409": {"description": "Not active or has bids"}
                }
            }
        },
        "/livez": {
            "get": {
                "tags": ["Health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "Service is running"}}
            }
        },
        "/readyz": {
            "get": {
                "tags": ["Health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "Service is ready"},
                    "503": {"description": "Service not ready"}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "JWT access token. Format: \"Bearer {token}\"."
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Procurement Service API",
	Description:      "Sealed-bid procurement platform: invited suppliers bid on projects while the ledger stays sealed, and bids are opened exactly once after the closing time.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
