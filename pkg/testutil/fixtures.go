package testutil

import (
	"fmt"

	"esbresolver/internal/directory/models"
)

// Site returns a directory site location for host.
func Site(host string) models.SiteLocation {
	return models.SiteLocation{
		InquireURL:  fmt.Sprintf("http://%s/uddi/inquire.asmx", host),
		PublishURL:  fmt.Sprintf("http://%s/uddi/publish.asmx", host),
		Description: host,
		AuthMode:    models.AuthWindows,
	}
}

// Binding returns a binding template with an access point.
func Binding(key, useType, accessPoint string) models.BindingTemplate {
	return models.BindingTemplate{
		Key:         key,
		AccessPoint: &models.AccessPoint{UseType: useType, Value: accessPoint},
	}
}

// Service returns a business service carrying bindings.
func Service(key, name string, bindings ...models.BindingTemplate) models.BusinessService {
	return models.BusinessService{
		Key:              key,
		Name:             name,
		BindingTemplates: bindings,
	}
}

// Business returns a business entity carrying services.
func Business(key, name string, services ...models.BusinessService) models.BusinessEntity {
	for i := range services {
		services[i].BusinessKey = key
	}
	return models.BusinessEntity{
		Key:      key,
		Name:     name,
		Services: services,
	}
}

// MustName builds a name identifier or panics.
func MustName(v string) models.Identifier {
	id, err := models.NewName(v)
	if err != nil {
		panic(err)
	}
	return id
}

// MustKey builds a key identifier or panics.
func MustKey(v string) models.Identifier {
	id, err := models.NewKey(v)
	if err != nil {
		panic(err)
	}
	return id
}
