package indexer

import (
	"context"
	"strings"
)

// DefaultResourceLimit is the page size used by ResourceAddresses.
const DefaultResourceLimit = 50

const resourceAddressesQuery = `query ResourceAddresses($type: String!, $limit: Int!) {
  move_resources(
    where: { type: { _ilike: $type } }
    limit: $limit
    order_by: { address: asc }
    distinct_on: address
  ) {
    address
  }
}`

type moveResourcesData struct {
	MoveResources []struct {
		Address string `json:"address"`
	} `json:"move_resources"`
}

// ResourceAddresses returns the distinct addresses holding a resource whose
// type matches resourceType case-insensitively, in ascending address order.
func (c *Client) ResourceAddresses(ctx context.Context, resourceType string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultResourceLimit
	}

	var data moveResourcesData
	err := c.Query(ctx, resourceAddressesQuery, map[string]any{
		"type":  strings.TrimSpace(resourceType),
		"limit": limit,
	}, &data)
	if err != nil {
		return nil, err
	}

	addresses := make([]string, 0, len(data.MoveResources))
	for _, item := range data.MoveResources {
		if strings.TrimSpace(item.Address) == "" {
			continue
		}
		addresses = append(addresses, item.Address)
	}
	return addresses, nil
}
