package agent

import (
	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// cartItemsSchema is shared by every tool that takes cart lines.
var cartItemsSchema = jsonschema.Definition{
	Type:        jsonschema.Array,
	Description: "List of (item_id, quantity) pairs",
	Items: &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"item_id": {
				Type:        jsonschema.String,
				Description: "ID of the menu item",
			},
			"quantity": {
				Type:        jsonschema.Integer,
				Description: "Quantity of the item, at least 1",
			},
		},
		Required: []string{"item_id", "quantity"},
	},
}

// toolDefinitions describes every operation the agent may invoke. The model
// picks from these by name; dispatch in dispatch.go must cover the same set.
func toolDefinitions() []openai.Tool {
	fn := func(def openai.FunctionDefinition) openai.Tool {
		return openai.Tool{Type: openai.ToolTypeFunction, Function: &def}
	}

	return []openai.Tool{
		fn(openai.FunctionDefinition{
			Name:        "list_restaurants",
			Description: "List restaurants with pagination. Use this to browse available restaurants.",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"limit": {
						Type:        jsonschema.Integer,
						Description: "Maximum number of restaurants to return (1-50, default 10)",
					},
					"skip": {
						Type:        jsonschema.Integer,
						Description: "Number of restaurants to skip for pagination (default 0)",
					},
				},
			},
		}),
		fn(openai.FunctionDefinition{
			Name:        "get_restaurant_menu",
			Description: "Get menu items for a restaurant. Use the restaurant_id from list_restaurants.",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"restaurant_id": {
						Type:        jsonschema.String,
						Description: "ID of the restaurant",
					},
				},
				Required: []string{"restaurant_id"},
			},
		}),
		fn(openai.FunctionDefinition{
			Name:        "get_menu_item",
			Description: "Get details of a specific menu item by its ID.",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"item_id": {
						Type:        jsonschema.String,
						Description: "ID of the menu item",
					},
				},
				Required: []string{"item_id"},
			},
		}),
		fn(openai.FunctionDefinition{
			Name:        "build_cart",
			Description: "Build a priced cart with items from one restaurant.",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"restaurant_id": {
						Type:        jsonschema.String,
						Description: "ID of the restaurant",
					},
					"items": cartItemsSchema,
				},
				Required: []string{"restaurant_id", "items"},
			},
		}),
		fn(openai.FunctionDefinition{
			Name:        "compute_cost_estimate",
			Description: "Compute a tax-inclusive cost estimate for a cart. Use this to quote pricing before ordering.",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"restaurant_id": {
						Type:        jsonschema.String,
						Description: "ID of the restaurant",
					},
					"items": cartItemsSchema,
				},
				Required: []string{"restaurant_id", "items"},
			},
		}),
		fn(openai.FunctionDefinition{
			Name:        "create_receipt",
			Description: "Create a receipt for a completed order. Use this to finalize an order after building a cart.",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"restaurant_id": {
						Type:        jsonschema.String,
						Description: "ID of the restaurant",
					},
					"items": cartItemsSchema,
					"delivery_id": {
						Type:        jsonschema.String,
						Description: "Optional external_delivery_id if the order is linked to a delivery",
					},
					"customer_name": {
						Type:        jsonschema.String,
						Description: "Customer name",
					},
					"customer_email": {
						Type:        jsonschema.String,
						Description: "Customer email",
					},
					"customer_phone": {
						Type:        jsonschema.String,
						Description: "Customer phone number",
					},
					"delivery_address": {
						Type:        jsonschema.String,
						Description: "Delivery address",
					},
				},
				Required: []string{"restaurant_id", "items"},
			},
		}),
		fn(openai.FunctionDefinition{
			Name:        "create_delivery",
			Description: "Create a new DoorDash delivery for an order.",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"external_delivery_id":        {Type: jsonschema.String, Description: "Unique identifier for the delivery"},
					"pickup_address":              {Type: jsonschema.String, Description: "Pickup address"},
					"pickup_business_name":        {Type: jsonschema.String, Description: "Business name for the pickup location"},
					"pickup_phone_number":         {Type: jsonschema.String, Description: "Phone number for the pickup location"},
					"dropoff_address":             {Type: jsonschema.String, Description: "Dropoff address"},
					"dropoff_phone_number":        {Type: jsonschema.String, Description: "Phone number for the dropoff location"},
					"pickup_instructions":         {Type: jsonschema.String, Description: "Special instructions for pickup"},
					"pickup_reference_tag":        {Type: jsonschema.String, Description: "Reference tag for pickup"},
					"dropoff_business_name":       {Type: jsonschema.String, Description: "Business name for the dropoff location"},
					"dropoff_instructions":        {Type: jsonschema.String, Description: "Special instructions for dropoff"},
					"dropoff_contact_given_name":  {Type: jsonschema.String, Description: "Contact first name"},
					"dropoff_contact_family_name": {Type: jsonschema.String, Description: "Contact last name"},
					"order_value":                 {Type: jsonschema.Integer, Description: "Order value in cents"},
				},
				Required: []string{
					"external_delivery_id",
					"pickup_address",
					"pickup_business_name",
					"pickup_phone_number",
					"dropoff_address",
					"dropoff_phone_number",
				},
			},
		}),
		fn(openai.FunctionDefinition{
			Name:        "track_delivery",
			Description: "Get the status of a DoorDash delivery by external delivery ID.",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"external_delivery_id": {
						Type:        jsonschema.String,
						Description: "The external delivery ID used when creating the delivery",
					},
				},
				Required: []string{"external_delivery_id"},
			},
		}),
	}
}
