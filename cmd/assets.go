package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"atlan-sdk/feature/assets"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for asset commands
	assetGUIDs         []string
	assetTypeName      string
	assetQualifiedName string
	purgeAssets        bool
	yesConfirm         bool
)

// assetsCmd is the parent command for single-asset operations.
var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Get, delete and restore individual assets",
}

var assetsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print an asset as JSON",
	Long: `Fetches an asset by GUID or by type and qualified name.

Examples:
  assets get --guid 8b1c...
  assets get --type Table --qualified-name default/snowflake/1700000000/DB/SCH/ORDERS`,
	RunE: runAssetsGet,
}

var assetsDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Archive or purge assets by GUID",
	Long: `Archives (soft-deletes) assets. Archived assets can be restored.
With --purge the assets are removed permanently.

Examples:
  # Archive with interactive confirmation
  assets delete --guid 8b1c... --guid 44f0...

  # Purge with auto-confirm (non-interactive)
  assets delete --guid 8b1c... --purge --yes`,
	RunE: runAssetsDelete,
}

var assetsRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore an archived asset",
	RunE:  runAssetsRestore,
}

func init() {
	assetsGetCmd.Flags().StringSliceVar(&assetGUIDs, "guid", nil, "Asset GUID")
	assetsGetCmd.Flags().StringVar(&assetTypeName, "type", "", "Asset type name")
	assetsGetCmd.Flags().StringVar(&assetQualifiedName, "qualified-name", "", "Asset qualified name")

	assetsDeleteCmd.Flags().StringSliceVar(&assetGUIDs, "guid", nil, "Asset GUIDs (repeatable)")
	assetsDeleteCmd.Flags().BoolVar(&purgeAssets, "purge", false, "Delete permanently instead of archiving")
	assetsDeleteCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")
	_ = assetsDeleteCmd.MarkFlagRequired("guid")

	assetsRestoreCmd.Flags().StringVar(&assetTypeName, "type", "", "Asset type name")
	assetsRestoreCmd.Flags().StringVar(&assetQualifiedName, "qualified-name", "", "Asset qualified name")
	_ = assetsRestoreCmd.MarkFlagRequired("type")
	_ = assetsRestoreCmd.MarkFlagRequired("qualified-name")

	assetsCmd.AddCommand(assetsGetCmd, assetsDeleteCmd, assetsRestoreCmd)
	RootCmd.AddCommand(assetsCmd)
}

func assetService() (*assets.Service, *zap.Logger, error) {
	cfg, l, err := setup()
	if err != nil {
		return nil, nil, err
	}
	api, err := newAPI(cfg, l)
	if err != nil {
		return nil, nil, err
	}
	return assets.NewService(api, l), l, nil
}

func runAssetsGet(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	svc, l, err := assetService()
	if err != nil {
		return err
	}
	defer l.Sync()

	var a assets.Asset
	switch {
	case len(assetGUIDs) == 1:
		a, err = svc.GetByGUID(ctx, assetGUIDs[0])
	case assetTypeName != "" && assetQualifiedName != "":
		a, err = svc.GetByQualifiedName(ctx, assetTypeName, assetQualifiedName)
	default:
		return fmt.Errorf("either one --guid or both --type and --qualified-name are required")
	}
	if err != nil {
		return err
	}
	data, err := assets.Marshal(a)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func runAssetsDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	svc, l, err := assetService()
	if err != nil {
		return err
	}
	defer l.Sync()

	kind := assets.DeleteSoft
	if purgeAssets {
		kind = assets.DeletePurge
	}
	l.Info("Planned deletion", zap.String("deleteType", string(kind)), zap.Strings("guids", assetGUIDs))

	if !confirmDestructiveAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	var resp *assets.MutationResponse
	if purgeAssets {
		resp, err = svc.Purge(ctx, assetGUIDs...)
	} else {
		resp, err = svc.Delete(ctx, assetGUIDs...)
	}
	if err != nil {
		return err
	}
	for _, a := range resp.Deleted() {
		fmt.Printf("%s\t%s\n", a.Header().GUID, assets.IdentityOf(a))
	}
	return nil
}

func runAssetsRestore(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	svc, l, err := assetService()
	if err != nil {
		return err
	}
	defer l.Sync()

	restored, err := svc.Restore(ctx, assetTypeName, assetQualifiedName)
	if err != nil {
		return err
	}
	if !restored {
		l.Info("Asset is already active", zap.String("qualifiedName", assetQualifiedName))
		return nil
	}
	l.Info("Restored asset", zap.String("qualifiedName", assetQualifiedName))
	return nil
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm destructive actions: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
