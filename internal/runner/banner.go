package runner

import (
	"github.com/projectdiscovery/gologger"
	pkgversion "github.com/projectdiscovery/netsweep/pkg/version"
)

var version = pkgversion.GetVersion()

const banner = `
                __                                
  ____   ___  _/ /_ ______      __ ___  ___  ____ 
 / __ \ / _ \/_  __// ___/ | /| / // _ \/ _ \/ __ \
/ / / //  __/ / /_ (__  )| |/ |/ //  __/  __/ /_/ /
/_/ /_/ \___/  \__//____/ |__/|__/ \___/\___/ .___/ 
                                           /_/     
`

// showBanner is used to show the banner to the user
func showBanner() {
	gologger.Print().Msgf("%s %s\n", banner, version)
	gologger.Print().Msgf("\t\tprojectdiscovery.io\n\n")
}
