// Package docs holds the OpenAPI document served by swaggerkit
//
// keep it in step with the @Router annotations on the handlers
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.1.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "paths": {
        "/organizations/{orgSlug}/stats/": {
            "get": {
                "tags": ["Stats"],
                "summary": "Usage dashboard",
                "description": "Derives the filter state from the query and renders the dashboard sections",
                "parameters": [
                    {"$ref": "#/components/parameters/orgSlug"},
                    {"$ref": "#/components/parameters/viewerOptional"},
                    {"name": "dataCategory", "in": "query", "schema": {"type": "string", "enum": ["errors", "transactions", "attachments"]}},
                    {"name": "statsPeriod", "in": "query", "schema": {"type": "string", "example": "14d"}},
                    {"name": "start", "in": "query", "schema": {"type": "string"}},
                    {"name": "end", "in": "query", "schema": {"type": "string"}},
                    {"name": "utc", "in": "query", "schema": {"type": "string"}},
                    {"name": "transform", "in": "query", "schema": {"type": "string"}},
                    {"name": "sort", "in": "query", "schema": {"type": "string"}},
                    {"name": "query", "in": "query", "schema": {"type": "string"}},
                    {"name": "cursor", "in": "query", "schema": {"type": "string"}}
                ],
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/View"}}}},
                    "404": {"description": "unknown organization", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            }
        },
        "/organizations/{orgSlug}/stats/state": {
            "post": {
                "tags": ["Stats"],
                "summary": "Write a filter change to the location",
                "description": "navigate=true answers 303 to the new location, otherwise the location is returned",
                "parameters": [{"$ref": "#/components/parameters/orgSlug"}],
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/StateInput"}}}},
                "responses": {
                    "200": {"description": "computed", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/StateResult"}}}},
                    "303": {"description": "navigated", "headers": {"Location": {"schema": {"type": "string"}}}}
                }
            }
        },
        "/organizations/{orgSlug}/stats/datetime": {
            "post": {
                "tags": ["Stats"],
                "summary": "Legacy time range selector change",
                "parameters": [{"$ref": "#/components/parameters/orgSlug"}],
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/DatetimeInput"}}}},
                "responses": {
                    "303": {"description": "navigated", "headers": {"Location": {"schema": {"type": "string"}}}}
                }
            }
        },
        "/organizations/{orgSlug}/stats/projects/{projectSlug}/links": {
            "get": {
                "tags": ["Stats"],
                "summary": "Cross navigation links of a project",
                "parameters": [
                    {"$ref": "#/components/parameters/orgSlug"},
                    {"name": "projectSlug", "in": "path", "required": true, "schema": {"type": "string"}}
                ],
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ProjectRow"}}}},
                    "404": {"description": "unknown project", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            }
        },
        "/organizations/{orgSlug}/stats/sampling": {
            "get": {
                "tags": ["Stats"],
                "summary": "Dynamic sampling settings",
                "description": "303 when a single project is selected, otherwise the unresolved path",
                "parameters": [
                    {"$ref": "#/components/parameters/orgSlug"},
                    {"$ref": "#/components/parameters/viewerOptional"}
                ],
                "responses": {
                    "200": {"description": "needs a project", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/SamplingResult"}}}},
                    "303": {"description": "navigated", "headers": {"Location": {"schema": {"type": "string"}}}},
                    "403": {"description": "sampling disabled", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            }
        },
        "/organizations/{orgSlug}/page-filters/": {
            "get": {
                "tags": ["PageFilters"],
                "summary": "Current page filter selection",
                "parameters": [{"$ref": "#/components/parameters/orgSlug"}, {"$ref": "#/components/parameters/viewer"}],
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Selection"}}}}
                }
            },
            "put": {
                "tags": ["PageFilters"],
                "summary": "Store the page filter selection",
                "parameters": [{"$ref": "#/components/parameters/orgSlug"}, {"$ref": "#/components/parameters/viewer"}],
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/SaveInput"}}}},
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Selection"}}}}
                }
            },
            "delete": {
                "tags": ["PageFilters"],
                "summary": "Reset the page filter selection",
                "parameters": [{"$ref": "#/components/parameters/orgSlug"}, {"$ref": "#/components/parameters/viewer"}],
                "responses": {"204": {"description": "cleared"}}
            }
        },
        "/meta/health": {
            "get": {
                "tags": ["Meta"],
                "summary": "Liveness",
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/HealthResponse"}}}}}
            }
        },
        "/meta/ready": {
            "get": {
                "tags": ["Meta"],
                "summary": "Readiness of the backing stores",
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ReadyResponse"}}}},
                    "503": {"description": "not ready", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ReadyResponse"}}}}
                }
            }
        },
        "/meta/service": {
            "get": {
                "tags": ["Meta"],
                "summary": "Service info, uptime and mounted modules",
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ServiceResponse"}}}}}
            }
        },
        "/meta/version": {
            "get": {
                "tags": ["Meta"],
                "summary": "Build information",
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/VersionResponse"}}}}}
            }
        }
    },
    "components": {
        "parameters": {
            "orgSlug": {"name": "orgSlug", "in": "path", "required": true, "schema": {"type": "string"}, "description": "Organization slug"},
            "viewer": {"name": "X-Orgstats-User", "in": "header", "required": true, "schema": {"type": "string"}, "description": "Viewer id"},
            "viewerOptional": {"name": "X-Orgstats-User", "in": "header", "required": false, "schema": {"type": "string"}, "description": "Viewer id"}
        },
        "schemas": {
            "Location": {
                "type": "object",
                "properties": {
                    "pathname": {"type": "string", "example": "/organizations/acme/stats/"},
                    "query": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}
                }
            },
            "DateWindow": {
                "type": "object",
                "description": "either period or start, end and utc",
                "properties": {
                    "period": {"type": "string", "example": "14d"},
                    "start": {"type": "string", "example": "2024-03-01T00:00:00Z"},
                    "end": {"type": "string", "example": "2024-03-08T00:00:00Z"},
                    "utc": {"type": "boolean"}
                }
            },
            "FilterState": {
                "type": "object",
                "properties": {
                    "data_category": {"type": "string", "enum": ["errors", "transactions", "attachments"]},
                    "date_window": {"$ref": "#/components/schemas/DateWindow"},
                    "project_ids": {"type": "array", "items": {"type": "integer", "format": "int64"}},
                    "chart_transform": {"type": "string"},
                    "table_sort": {"type": "string"},
                    "table_query": {"type": "string"},
                    "table_cursor": {"type": "string"}
                }
            },
            "Section": {
                "type": "object",
                "properties": {
                    "name": {"type": "string", "example": "usage_stats_org"},
                    "data": {"type": "object"},
                    "error": {"type": "string"}
                }
            },
            "View": {
                "type": "object",
                "properties": {
                    "document_title": {"type": "string", "example": "Usage Stats"},
                    "organization": {"type": "object"},
                    "location": {"$ref": "#/components/schemas/Location"},
                    "strategy": {"type": "string", "enum": ["page-filters", "legacy"]},
                    "state": {"$ref": "#/components/schemas/FilterState"},
                    "data_category_name": {"type": "string", "example": "Errors"},
                    "header": {"type": "object"},
                    "controls": {"type": "object"},
                    "sampling_alert": {"type": "object"},
                    "sections": {"type": "array", "items": {"$ref": "#/components/schemas/Section"}}
                }
            },
            "StateInput": {
                "type": "object",
                "properties": {
                    "location": {"type": "string", "example": "/organizations/acme/stats/?dataCategory=errors"},
                    "delta": {"type": "object", "additionalProperties": {"type": ["string", "null"]}, "example": {"dataCategory": "transactions", "cursor": null}},
                    "navigate": {"type": "boolean"}
                }
            },
            "DatetimeInput": {
                "type": "object",
                "properties": {
                    "location": {"type": "string"},
                    "start": {"type": "string", "format": "date-time"},
                    "end": {"type": "string", "format": "date-time"},
                    "relative": {"type": "string", "example": "7d"},
                    "utc": {"type": "boolean"}
                }
            },
            "StateResult": {
                "type": "object",
                "properties": {
                    "location": {"$ref": "#/components/schemas/Location"},
                    "url": {"type": "string"}
                }
            },
            "ProjectRow": {
                "type": "object",
                "properties": {
                    "project": {"type": "object", "properties": {"id": {"type": "integer"}, "slug": {"type": "string"}}},
                    "links": {"type": "object", "additionalProperties": {"$ref": "#/components/schemas/Location"}}
                }
            },
            "SamplingResult": {
                "type": "object",
                "properties": {
                    "path": {"type": "string"},
                    "resolved": {"type": "boolean"}
                }
            },
            "Datetime": {
                "type": "object",
                "properties": {
                    "period": {"type": "string", "example": "14d"},
                    "start": {"type": "string", "example": "2024-03-01T00:00:00Z"},
                    "end": {"type": "string", "example": "2024-03-08T00:00:00Z"},
                    "utc": {"type": "boolean"}
                }
            },
            "SaveInput": {
                "type": "object",
                "properties": {
                    "datetime": {"$ref": "#/components/schemas/Datetime"},
                    "projects": {"type": "array", "items": {"type": "integer", "format": "int64", "minimum": -1}, "maxItems": 200}
                }
            },
            "Selection": {
                "type": "object",
                "properties": {
                    "datetime": {"$ref": "#/components/schemas/Datetime"},
                    "projects": {"type": "array", "items": {"type": "integer", "format": "int64"}},
                    "updated_at": {"type": "string", "format": "date-time"}
                }
            },
            "HealthResponse": {
                "type": "object",
                "properties": {
                    "ok": {"type": "boolean"},
                    "service": {"type": "string", "example": "orgstats-api"},
                    "started": {"type": "string"},
                    "now": {"type": "string"}
                }
            },
            "ReadyResponse": {
                "type": "object",
                "properties": {
                    "status": {"type": "string", "example": "ok"},
                    "checks": {"type": "array", "items": {"type": "object"}}
                }
            },
            "ServiceResponse": {
                "type": "object",
                "properties": {
                    "name": {"type": "string", "example": "orgstats-api"},
                    "started": {"type": "string"},
                    "uptime": {"type": "integer"},
                    "modules": {"type": "array", "items": {"type": "string"}}
                }
            },
            "VersionResponse": {
                "type": "object",
                "properties": {
                    "service": {"type": "string", "example": "orgstats-api"},
                    "version": {"type": "string"},
                    "commit": {"type": "string"},
                    "date": {"type": "string"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported OpenAPI info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "orgstats API",
	Description:      "Organization usage dashboard state and page filters",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
