package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Timetable Generation API",
        "description": "Weekly academic timetable generator built on a finite-domain Boolean constraint solver.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Liveness check",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {
                        "description": "Ready"
                    }
                }
            }
        },
        "/api/v1/generate": {
            "post": {
                "summary": "Generate a weekly timetable",
                "description": "Runs the constraint solver against the supplied college settings, rooms, and faculty workloads.",
                "tags": ["Scheduler"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "payload",
                        "required": true,
                        "schema": {"type": "object"}
                    }
                ],
                "responses": {
                    "200": {"description": "generated schedule"},
                    "400": {"description": "malformed or infeasible-by-inspection payload"},
                    "422": {"description": "no feasible schedule exists"}
                }
            }
        },
        "/api/v1/generate/export.pdf": {
            "post": {
                "summary": "Generate a timetable and render it as a printable PDF",
                "tags": ["Scheduler"],
                "produces": ["application/pdf"],
                "responses": {
                    "200": {"description": "PDF document"}
                }
            }
        },
        "/api/v1/generate/export.csv": {
            "post": {
                "summary": "Generate a timetable and render it as CSV rows",
                "tags": ["Scheduler"],
                "produces": ["text/csv"],
                "responses": {
                    "200": {"description": "CSV document"}
                }
            }
        },
        "/api/v1/runs/{id}": {
            "get": {
                "summary": "Fetch the audit record for a previous generation run",
                "tags": ["Scheduler"],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "run metadata"},
                    "404": {"description": "run not found or audit trail disabled"}
                }
            }
        },
        "/api/v1/substitute-search": {
            "post": {
                "summary": "Find faculty free at a given day and time slot",
                "tags": ["Scheduler"],
                "parameters": [
                    {"in": "query", "name": "day", "required": true, "type": "string"},
                    {"in": "query", "name": "time_index", "required": true, "type": "integer"},
                    {"in": "body", "name": "payload", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "available faculty"}
                }
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
