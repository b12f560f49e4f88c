package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/drupkit/drupkit/internal/drupal"
	"github.com/drupkit/drupkit/pkg/models"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Inspect and edit role permissions",
	Long: `Inspect and edit the permission grants of exported roles
(user.role.*.yml). Permissions are addressed with short names per entity
type and bundle; drupkit encodes them into the full permission keys the
export carries.

Short names per entity type:
  node           create, edit-own, edit-any, delete-own, delete-any,
                 view-revisions, revert-revisions, delete-revisions
  media          create, edit-own, edit-any, delete-own, delete-any
  taxonomy_term  create, edit, delete, view
  block_content  create, edit-own, edit-any, delete-own, delete-any, view

The special value 'all' grants the whole vocabulary; 'none' (revoke only)
clears every grant for the pair.`,
}

var rolesListCmd = &cobra.Command{
	Use:   "list [role]",
	Short: "List roles, or one role's grants by bundle",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRolesList,
}

var rolesGrantCmd = &cobra.Command{
	Use:   "grant <role>",
	Short: "Grant bundle permissions to a role",
	Long: `Grant bundle permissions to a role.

Examples:
  drupkit roles grant editor --type node --bundle article --perm create --perm edit-any
  drupkit roles grant editor --type node --bundle article --perm all`,
	Args: cobra.ExactArgs(1),
	RunE: runRolesGrant,
}

var rolesRevokeCmd = &cobra.Command{
	Use:   "revoke <role>",
	Short: "Revoke bundle permissions from a role",
	Long: `Revoke bundle permissions from a role.

Examples:
  drupkit roles revoke editor --type node --bundle article --perm delete-any
  drupkit roles revoke editor --type node --bundle article --perm none`,
	Args: cobra.ExactArgs(1),
	RunE: runRolesRevoke,
}

func init() {
	rootCmd.AddCommand(rolesCmd)
	rolesCmd.AddCommand(rolesListCmd)
	rolesCmd.AddCommand(rolesGrantCmd)
	rolesCmd.AddCommand(rolesRevokeCmd)

	for _, c := range []*cobra.Command{rolesListCmd, rolesGrantCmd, rolesRevokeCmd} {
		c.Flags().String("project", "", "Project name (default: active project)")
		c.Flags().StringP("dir", "d", "", "Configuration export directory (overrides the project's)")
	}
	rolesListCmd.Flags().String("role", "", "Show one role's grants (same as the positional argument)")
	for _, c := range []*cobra.Command{rolesGrantCmd, rolesRevokeCmd} {
		c.Flags().StringP("type", "t", "", "Entity type the permissions apply to")
		c.Flags().StringP("bundle", "b", "", "Bundle the permissions apply to")
		c.Flags().StringSliceP("perm", "p", nil, "Permission short name (repeatable)")
		_ = c.MarkFlagRequired("type")
		_ = c.MarkFlagRequired("bundle")
		_ = c.MarkFlagRequired("perm")
	}
}

func runRolesList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	proj, err := resolveProject(cmd)
	if err != nil {
		return err
	}
	dir, err := resolveConfigDir(cmd, proj)
	if err != nil {
		return err
	}

	roleID := getStringFlag(cmd, "role")
	if len(args) > 0 {
		roleID = args[0]
	}
	if roleID != "" {
		return printRoleGrants(cmd, dir, roleID)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	roleFiles := drupal.RoleFiles(names)
	if len(roleFiles) == 0 {
		_, _ = fmt.Fprintln(out, cliMuted.Render("No role documents in "+dir))
		return nil
	}
	sort.Strings(roleFiles)

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Role", "Label", "Permissions"})
	for _, f := range roleFiles {
		doc, err := drupal.LoadRole(filepath.Join(dir, f))
		if err != nil {
			deps.Logger.Warn("skipping unreadable role document", "file", f, "error", err)
			continue
		}
		t.AppendRow(table.Row{doc.ID, doc.Label, len(doc.Permissions)})
	}
	_, _ = fmt.Fprintln(out, t.Render())
	return nil
}

// printRoleGrants shows one role's permissions decoded and grouped by
// entity type and bundle. Keys outside the bundle vocabulary (like the
// global "access content") are summed up separately.
func printRoleGrants(cmd *cobra.Command, dir, roleID string) error {
	out := cmd.OutOrStdout()

	doc, err := drupal.LoadRole(filepath.Join(dir, drupal.RoleFilename(roleID)))
	if err != nil {
		return err
	}

	grouped := drupal.GroupPermissionsByBundle(doc.Permissions)
	decoded := 0

	var lines []string
	for _, et := range models.AllEntityTypes() {
		bundles := grouped[et]
		if len(bundles) == 0 {
			continue
		}
		ids := make([]string, 0, len(bundles))
		for id := range bundles {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			keys := bundles[id]
			decoded += len(keys)
			shorts := make([]string, 0, len(keys))
			for _, key := range keys {
				if p, ok := drupal.DecodePermission(key); ok {
					shorts = append(shorts, p.ShortName)
				}
			}
			sort.Strings(shorts)
			lines = append(lines, fmt.Sprintf("%s %s/%s: %s",
				cliPrimary.Render(string(et)), id, cliMuted.Render("bundle"), strings.Join(shorts, ", ")))
		}
	}

	if other := len(doc.Permissions) - decoded; other > 0 {
		lines = append(lines, "", cliMuted.Render(fmt.Sprintf("%d permission(s) outside the bundle vocabulary.", other)))
	}
	if len(lines) == 0 {
		lines = []string{cliMuted.Render("No permissions granted.")}
	}

	_, _ = fmt.Fprintln(out, renderCard("Role "+doc.DisplayName(), lines...))
	return nil
}

func runRolesGrant(cmd *cobra.Command, args []string) error {
	return editRolePermissions(cmd, args[0], false)
}

func runRolesRevoke(cmd *cobra.Command, args []string) error {
	return editRolePermissions(cmd, args[0], true)
}

// editRolePermissions parses the grant/revoke flags and applies the edit.
func editRolePermissions(cmd *cobra.Command, roleID string, revoke bool) error {
	et := models.EntityType(getStringFlag(cmd, "type"))
	if !et.IsValid() {
		return fmt.Errorf("unknown entity type %q: valid types are %s", getStringFlag(cmd, "type"), entityTypeList())
	}
	bundle := getStringFlag(cmd, "bundle")
	if !drupal.IsMachineName(bundle) {
		return fmt.Errorf("invalid bundle %q: lowercase letters, digits and underscores only", bundle)
	}

	keys, err := resolvePermissionKeys(et, bundle, getStringSliceFlag(cmd, "perm"), revoke)
	if err != nil {
		return err
	}

	proj, err := resolveProject(cmd)
	if err != nil {
		return err
	}
	dir, err := resolveConfigDir(cmd, proj)
	if err != nil {
		return err
	}
	return applyRoleEdit(cmd, dir, roleID, et, bundle, keys, revoke)
}

// applyRoleEdit loads the role document, applies the grant or revoke and
// saves it back. Shared by the flag commands and the interactive menu.
func applyRoleEdit(cmd *cobra.Command, dir, roleID string, et models.EntityType, bundle string, keys []string, revoke bool) error {
	out := cmd.OutOrStdout()

	path := filepath.Join(dir, drupal.RoleFilename(roleID))
	doc, err := drupal.LoadRole(path)
	if err != nil {
		return err
	}

	var changed int
	var verb string
	if revoke {
		changed = doc.Revoke(keys...)
		verb = "revoked from"
	} else {
		changed = doc.Grant(keys...)
		verb = "granted to"
	}

	if changed == 0 {
		_, _ = fmt.Fprintln(out, symSuccess()+" Nothing to change; the role already matches.")
		return nil
	}
	if err := drupal.SaveRole(path, doc); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, renderSuccessCard(
		fmt.Sprintf("%d permission(s) %s %q", changed, verb, roleID),
		fmt.Sprintf("%s/%s now carries %d grant(s).", et, bundle,
			len(doc.BundleGrants(drupal.Permission{EntityType: et, Bundle: bundle}))),
	))
	return nil
}

// listRoleIDs returns the sorted role ids found in the directory.
func listRoleIDs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	ids := make([]string, 0)
	for _, f := range drupal.RoleFiles(names) {
		if id, ok := drupal.RoleID(f); ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// resolvePermissionKeys expands the requested short names into full keys.
// The special short name "all" covers the entity type's whole vocabulary;
// "none" does the same on revoke, clearing every grant for the pair.
func resolvePermissionKeys(et models.EntityType, bundle string, shorts []string, revoking bool) ([]string, error) {
	vocabulary := drupal.PermissionShortNames(et)
	if len(vocabulary) == 0 {
		return nil, fmt.Errorf("entity type %s has no bundle permissions", et)
	}

	for _, s := range shorts {
		switch s {
		case "all":
			return drupal.ExpandAll(et, bundle), nil
		case "none":
			if !revoking {
				return nil, fmt.Errorf("--perm none clears permissions and only applies to revoke; use --perm all to grant everything")
			}
			return drupal.ExpandAll(et, bundle), nil
		}
	}

	keys := make([]string, 0, len(shorts))
	for _, s := range shorts {
		key, ok := drupal.EncodePermission(et, bundle, s)
		if !ok {
			return nil, fmt.Errorf("unknown permission %q for %s: valid short names are %s",
				s, et, strings.Join(vocabulary, ", "))
		}
		keys = append(keys, key)
	}
	return keys, nil
}
