package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/GregMSThompson/econsim-backend/infra/cloudrun"
	"github.com/GregMSThompson/econsim-backend/infra/docker"
	"github.com/GregMSThompson/econsim-backend/infra/firestore"
	"github.com/GregMSThompson/econsim-backend/infra/identity"
	"github.com/GregMSThompson/econsim-backend/infra/provider"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		// set default provider with the correct project
		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		// enable identity service to allow using firebase
		_, err = identity.SetupIdentity(ctx)
		if err != nil {
			return err
		}

		// enable firestore and create a database for the demo deployment
		err = firestore.SetupFirestore(ctx, prov)
		if err != nil {
			return err
		}

		// create docker repo
		repo, err := docker.CreateCloudrunRepo(ctx)
		if err != nil {
			return err
		}

		_, err = cloudrun.SetupCloudRun(ctx, prov, repo)
		if err != nil {
			return err
		}

		return nil
	})
}
