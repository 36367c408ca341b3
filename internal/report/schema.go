package report

// Schema is the JSON Schema (Draft 2020-12) for the deck JSON output.
// It documents the structure returned by WriteJSON.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/techflow-ai/pitchdeck/deck.schema.json",
  "title": "TechFlow AI Pitch Deck",
  "description": "Output schema for pitchdeck render --format=json",
  "type": "object",
  "required": ["version", "title", "navigation", "sidebar", "sections"],
  "properties": {
    "version": {
      "type": "string",
      "description": "Schema version (semver)"
    },
    "title": { "type": "string" },
    "navigation": {
      "type": "array",
      "items": { "$ref": "#/$defs/NavItem" }
    },
    "sidebar": { "$ref": "#/$defs/Sidebar" },
    "sections": {
      "type": "array",
      "items": { "$ref": "#/$defs/Page" }
    }
  },
  "$defs": {
    "NavItem": {
      "type": "object",
      "required": ["label", "slug"],
      "properties": {
        "label": { "type": "string", "minLength": 1 },
        "slug": { "type": "string", "pattern": "^[a-z]+$" }
      }
    },
    "Sidebar": {
      "type": "object",
      "required": ["brand", "quick_stats", "contact"],
      "properties": {
        "brand": { "type": "string" },
        "quick_stats": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["label", "value"],
            "properties": {
              "label": { "type": "string" },
              "value": { "type": "string" }
            }
          }
        },
        "contact": {
          "type": "array",
          "items": { "type": "string" }
        }
      }
    },
    "Page": {
      "type": "object",
      "required": ["slug", "label", "title", "blocks"],
      "properties": {
        "slug": { "type": "string", "pattern": "^[a-z]+$" },
        "label": { "type": "string", "minLength": 1 },
        "title": { "type": "string" },
        "blocks": {
          "type": "array",
          "items": { "$ref": "#/$defs/Block" }
        }
      }
    },
    "Block": {
      "type": "object",
      "required": ["kind"],
      "properties": {
        "kind": {
          "type": "string",
          "enum": [
            "heading", "text", "card", "columns", "stat", "list", "pre",
            "image", "chart", "timeline", "links", "quote", "divider"
          ]
        },
        "level": { "type": "integer", "minimum": 1 },
        "text": { "type": "string" },
        "title": { "type": "string" },
        "icon": { "type": "string" },
        "tone": {
          "type": "string",
          "enum": ["hero", "stat", "problem", "solution", "tech", "demo", "phone"]
        },
        "value": { "type": "string" },
        "caption": { "type": "string" },
        "url": { "type": "string" },
        "items": {
          "type": "array",
          "items": { "type": "string" }
        },
        "weights": {
          "type": "array",
          "items": { "type": "integer", "minimum": 1 }
        },
        "children": {
          "type": "array",
          "items": { "$ref": "#/$defs/Block" }
        },
        "milestones": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["when", "phase", "description"],
            "properties": {
              "when": { "type": "string" },
              "phase": { "type": "string" },
              "description": { "type": "string" }
            }
          }
        },
        "links": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["text", "href"],
            "properties": {
              "text": { "type": "string" },
              "href": { "type": "string" }
            }
          }
        },
        "chart": { "$ref": "#/$defs/Chart" }
      }
    },
    "Chart": {
      "type": "object",
      "required": ["kind", "title", "colors", "layout_hints"],
      "properties": {
        "kind": { "type": "string", "enum": ["donut", "line"] },
        "title": { "type": "string" },
        "slices": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["category", "value"],
            "properties": {
              "category": { "type": "string" },
              "value": { "type": "number" }
            }
          }
        },
        "points": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["x", "y"],
            "properties": {
              "x": { "type": "number" },
              "y": { "type": "number" }
            }
          }
        },
        "colors": {
          "type": "array",
          "items": { "type": "string" },
          "description": "Color tokens; one per slice for donut charts"
        },
        "series_name": { "type": "string" },
        "y_axis_label": { "type": "string" },
        "layout_hints": {
          "type": "object",
          "description": "Surface-specific layout preferences",
          "properties": {
            "height": { "type": "integer", "minimum": 1 },
            "hole": { "type": "number", "minimum": 0, "maximum": 1 },
            "show_legend": { "type": "boolean" },
            "mode": { "type": "string" },
            "line_width": { "type": "number" },
            "marker_size": { "type": "number" }
          }
        }
      },
      "allOf": [
        {
          "if": { "properties": { "kind": { "const": "donut" } } },
          "then": { "required": ["slices"] }
        },
        {
          "if": { "properties": { "kind": { "const": "line" } } },
          "then": { "required": ["points"] }
        }
      ]
    }
  }
}`
