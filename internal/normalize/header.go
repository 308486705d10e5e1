package normalize

// Canonical field names all normalized rows key by, in column order.
const (
	FieldName          = "name"
	FieldWebsite       = "website"
	FieldCategory      = "category"
	FieldAccountStatus = "account_status"
	FieldStatusDetail  = "status_detail"
	FieldDescription   = "description"
	FieldContactName   = "contact_name"
	FieldContactPhone  = "contact_phone"
	FieldContactEmail  = "contact_email"
	FieldAddress       = "address"
	FieldUsername      = "username"
	FieldPassword      = "password"
	FieldCallFlag      = "call_flag"
	FieldPriority      = "priority"
	FieldComments      = "comments"
	FieldCountry       = "country"
)

// CanonicalFields returns the base header list in canonical column order.
func CanonicalFields() []string {
	return []string{
		FieldName,
		FieldWebsite,
		FieldCategory,
		FieldAccountStatus,
		FieldStatusDetail,
		FieldDescription,
		FieldContactName,
		FieldContactPhone,
		FieldContactEmail,
		FieldAddress,
		FieldUsername,
		FieldPassword,
		FieldCallFlag,
		FieldPriority,
		FieldComments,
		FieldCountry,
	}
}

// fieldSynonyms lists, per canonical field, the source column names it may
// arrive under, in priority order. The canonical name itself is always tried
// first; the first non-empty match wins. Sources mix English, Spanish and
// Portuguese sheets, so the table carries all observed spellings.
var fieldSynonyms = map[string][]string{
	FieldName:          {"Name", "Company Name", "Company", "Empresa", "Nome", "Nombre"},
	FieldWebsite:       {"Website", "Web Site", "Site", "URL", "Sitio Web"},
	FieldCategory:      {"Category", "CATEGORIA", "Categoria", "Categoría"},
	FieldAccountStatus: {"Account Status", "Account", "Estado de Cuenta"},
	FieldStatusDetail:  {"Status", "Estado", "Situação"},
	FieldDescription:   {"Description", "Descripcion", "Descripción", "Descrição"},
	FieldContactName:   {"Contact", "Contact Name", "Contacto"},
	FieldContactPhone:  {"Phone", "Contact Phone", "Telefono", "Teléfono", "Telefone"},
	FieldContactEmail:  {"Email", "E-mail", "Contact Email", "Correo"},
	FieldAddress:       {"Address", "Direccion", "Dirección", "Endereço"},
	FieldUsername:      {"Username", "User", "Usuario"},
	FieldPassword:      {"Password", "Pass", "Contraseña", "Senha"},
	FieldCallFlag:      {"Call", "Call Flag", "Llamar"},
	FieldPriority:      {"Priority", "Prioridad", "Prioridade"},
	FieldComments:      {"Comments", "Comment", "Notes", "Comentarios", "Comentários"},
	FieldCountry:       {"Country", "Pais", "País"},
}

// NormalizeRow maps a raw spreadsheet row onto canonical field names.
// Resolution per field: the canonical name itself, then its synonyms in
// priority order; first non-empty value wins. Unmatched fields resolve to ""
// so every canonical key is always present. Pure and idempotent: a row
// already keyed canonically comes back unchanged.
func NormalizeRow(raw map[string]string) map[string]string {
	out := make(map[string]string, len(fieldSynonyms))
	for _, field := range CanonicalFields() {
		if v := raw[field]; v != "" {
			out[field] = v
			continue
		}
		out[field] = firstMatch(raw, fieldSynonyms[field])
	}
	return out
}

func firstMatch(raw map[string]string, synonyms []string) string {
	for _, key := range synonyms {
		if v := raw[key]; v != "" {
			return v
		}
	}
	return ""
}
