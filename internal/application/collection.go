package application

import (
	"github.com/shanedonnelly/devops/internal/application/commands/auth"
	"github.com/shanedonnelly/devops/internal/application/commands/catalogue"
	"github.com/shanedonnelly/devops/internal/application/commands/site"
	"github.com/shanedonnelly/devops/internal/application/query"
)

type Collection struct {
	*auth.Auth
	*site.CreateSite
	*site.UpdateSite
	*site.DeleteSite
	*site.UpdateSiteConfig
	*catalogue.ReplaceCatalogue
	*query.ListSites
	*query.GetCatalogue
	*query.GetSiteConfig
}
