// Package docs holds the OpenAPI document served by swaggerkit. Code generated by swag; DO NOT EDIT.
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.1.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{.Description}}",
        "version": "{{.Version}}"
    },
    "paths": {
        "/meta/health": {
            "get": {
                "tags": ["Meta"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/http.HealthResponse"}}}}}
            }
        },
        "/meta/ready": {
            "get": {
                "tags": ["Meta"],
                "summary": "Readiness probe with dependency checks",
                "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/http.ReadyResponse"}}}}}
            }
        },
        "/meta/version": {
            "get": {
                "tags": ["Meta"],
                "summary": "Build and version info",
                "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/version.BuildInfo"}}}}}
            }
        },
        "/meta/service": {
            "get": {
                "tags": ["Meta"],
                "summary": "Service info and uptime",
                "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/http.ServiceResponse"}}}}}
            }
        },
        "/coverage/chart": {
            "post": {
                "tags": ["Coverage"],
                "summary": "Filter, bucket and annotate the dataset into a chart spec",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.ChartInput"}}}},
                "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.ChartOutput"}}}}}
            }
        },
        "/coverage/render": {
            "post": {
                "tags": ["Coverage"],
                "summary": "Render the chart as PNG or SVG",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.RenderInput"}}}},
                "responses": {"200": {"description": "Image", "content": {"image/png": {"schema": {"type": "string", "format": "binary"}}, "image/svg+xml": {"schema": {"type": "string"}}}}}
            }
        },
        "/coverage/export/csv": {
            "post": {
                "tags": ["Coverage"],
                "summary": "Download aggregated rows as delimited text",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.ExportInput"}}}},
                "responses": {"200": {"description": "CSV", "content": {"text/csv": {"schema": {"type": "string"}}}}}
            }
        },
        "/coverage/export/xlsx": {
            "post": {
                "tags": ["Coverage"],
                "summary": "Download aggregated rows as a workbook",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.ExportInput"}}}},
                "responses": {"200": {"description": "Workbook", "content": {"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": {"schema": {"type": "string", "format": "binary"}}}}}
            }
        },
        "/coverage/dataset/summary": {
            "post": {
                "tags": ["Coverage"],
                "summary": "Describe the dataset behind a source",
                "requestBody": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.SummaryInput"}}}},
                "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.SummaryOutput"}}}}}
            }
        },
        "/coverage/events": {
            "get": {
                "tags": ["Coverage"],
                "summary": "List the reference events with their marker tokens",
                "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.EventsOutput"}}}}}
            }
        }
    },
    "components": {
        "schemas": {
            "domain.DateRange": {
                "type": "object",
                "properties": {
                    "start": {"type": "string", "example": "2021-01-01"},
                    "end": {"type": "string", "example": "2021-01-31"}
                }
            },
            "domain.ChartInput": {
                "type": "object",
                "properties": {
                    "source": {"type": "string", "maxLength": 2048, "example": "data/green_deal_data.csv"},
                    "range": {"$ref": "#/components/schemas/domain.DateRange"},
                    "bucket_days": {"type": "integer", "minimum": 1, "maximum": 3660, "example": 7},
                    "show_trend": {"type": "boolean", "example": true},
                    "show_events": {"type": "boolean", "example": true},
                    "show_ratio": {"type": "boolean", "example": false},
                    "keyword": {"type": "string", "maxLength": 200, "example": "green deal"},
                    "epoch": {"type": "string", "example": "2021-01-01"},
                    "title": {"type": "string", "maxLength": 200}
                }
            },
            "domain.RenderInput": {
                "allOf": [
                    {"$ref": "#/components/schemas/domain.ChartInput"},
                    {
                        "type": "object",
                        "properties": {
                            "format": {"type": "string", "enum": ["png", "svg"]},
                            "width": {"type": "integer", "minimum": 200, "maximum": 4096, "example": 1024},
                            "height": {"type": "integer", "minimum": 150, "maximum": 4096, "example": 512}
                        }
                    }
                ]
            },
            "domain.ExportInput": {
                "allOf": [
                    {"$ref": "#/components/schemas/domain.ChartInput"},
                    {
                        "type": "object",
                        "properties": {
                            "delimiter": {"type": "string", "enum": ["comma", "tab", "semicolon"]}
                        }
                    }
                ]
            },
            "aggregate.Row": {
                "type": "object",
                "properties": {
                    "bucket_start": {"type": "string", "format": "date-time"},
                    "article_count_sum": {"type": "number"},
                    "all_articles_sum": {"type": "number"},
                    "ratio": {"type": "number", "nullable": true}
                }
            },
            "chart.Point": {
                "type": "object",
                "properties": {
                    "x": {"type": "string", "format": "date-time"},
                    "y": {"type": "number", "nullable": true}
                }
            },
            "chart.Series": {
                "type": "object",
                "properties": {
                    "name": {"type": "string"},
                    "axis": {"type": "string", "enum": ["primary", "secondary"]},
                    "points": {"type": "array", "items": {"$ref": "#/components/schemas/chart.Point"}}
                }
            },
            "chart.Marker": {
                "type": "object",
                "properties": {
                    "index": {"type": "integer"},
                    "date": {"type": "string", "format": "date-time"},
                    "label": {"type": "string"},
                    "token": {"type": "string", "example": "[3]"}
                }
            },
            "chart.Spec": {
                "type": "object",
                "properties": {
                    "id": {"type": "string"},
                    "title": {"type": "string"},
                    "empty": {"type": "boolean"},
                    "x_axis": {
                        "type": "object",
                        "properties": {
                            "start": {"type": "string", "format": "date-time"},
                            "end": {"type": "string", "format": "date-time"}
                        }
                    },
                    "series": {"type": "array", "items": {"$ref": "#/components/schemas/chart.Series"}},
                    "trend": {
                        "type": "object",
                        "properties": {
                            "slope": {"type": "number"},
                            "intercept": {"type": "number"},
                            "points": {"type": "array", "items": {"$ref": "#/components/schemas/chart.Point"}}
                        }
                    },
                    "markers": {"type": "array", "items": {"$ref": "#/components/schemas/chart.Marker"}}
                }
            },
            "domain.ChartOutput": {
                "type": "object",
                "properties": {
                    "chart": {"$ref": "#/components/schemas/chart.Spec"},
                    "rows": {"type": "array", "items": {"$ref": "#/components/schemas/aggregate.Row"}},
                    "range": {"$ref": "#/components/schemas/domain.DateRange"},
                    "in_range": {"type": "integer"},
                    "dropped": {"type": "integer"},
                    "total": {"type": "integer"},
                    "trend_omitted": {"type": "boolean"}
                }
            },
            "domain.SummaryInput": {
                "type": "object",
                "properties": {
                    "source": {"type": "string", "maxLength": 2048}
                }
            },
            "domain.SummaryOutput": {
                "type": "object",
                "properties": {
                    "source": {"type": "string"},
                    "rows": {"type": "integer"},
                    "dropped": {"type": "integer"},
                    "total": {"type": "integer"},
                    "min_day": {"type": "string", "example": "2019-01-01"},
                    "max_day": {"type": "string", "example": "2024-12-31"},
                    "keywords": {"type": "array", "items": {"type": "string"}}
                }
            },
            "domain.EventRow": {
                "type": "object",
                "properties": {
                    "index": {"type": "integer", "example": 1},
                    "token": {"type": "string", "example": "[1]"},
                    "date": {"type": "string", "example": "2019-12-11"},
                    "label": {"type": "string"}
                }
            },
            "domain.EventsOutput": {
                "type": "object",
                "properties": {
                    "version": {"type": "integer"},
                    "events": {"type": "array", "items": {"$ref": "#/components/schemas/domain.EventRow"}}
                }
            },
            "http.HealthResponse": {
                "type": "object",
                "properties": {
                    "ok": {"type": "boolean"},
                    "service": {"type": "string", "example": "datax-api"},
                    "started": {"type": "string"},
                    "now": {"type": "string"}
                }
            },
            "http.ReadyCheck": {
                "type": "object",
                "properties": {
                    "name": {"type": "string", "example": "pg"},
                    "status": {"type": "string", "example": "ok"},
                    "error": {"type": "string"}
                }
            },
            "http.ReadyResponse": {
                "type": "object",
                "properties": {
                    "status": {"type": "string", "example": "ok"},
                    "checks": {"type": "array", "items": {"$ref": "#/components/schemas/http.ReadyCheck"}},
                    "now": {"type": "string"}
                }
            },
            "http.ServiceResponse": {
                "type": "object",
                "properties": {
                    "name": {"type": "string", "example": "datax-api"},
                    "started": {"type": "string"},
                    "uptime": {"type": "integer", "example": 300}
                }
            },
            "version.BuildInfo": {
                "type": "object",
                "properties": {
                    "service": {"type": "string"},
                    "version": {"type": "string"},
                    "commit": {"type": "string"},
                    "date": {"type": "string"},
                    "go": {"type": "string"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "datax API",
	Description:      "Filter, aggregate and annotate article coverage time series",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
