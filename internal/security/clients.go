package security

// In-memory client registry (replace with DB/config later)
type Client struct {
	ID      string
	Secret  string
	Perms   []string // e.g. {"storefront.read","storefront.write"}
	Enabled bool
}

var Clients = map[string]Client{
	"storefront-web": {ID: "storefront-web", Secret: "storefront-web-secret", Perms: []string{"storefront.read", "storefront.write"}, Enabled: true},
	"svc-catalog":    {ID: "svc-catalog", Secret: "catalog-secret", Perms: []string{"storefront.read"}, Enabled: true},
	"svc-analytics":  {ID: "svc-analytics", Secret: "ana-secret", Perms: []string{"storefront.read"}, Enabled: true},
}
