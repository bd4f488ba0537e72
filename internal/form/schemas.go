package form

// 联系人表单字段
const (
	FieldName         = "name"
	FieldRelationship = "relationship"
	FieldPhone        = "phone"
)

// 注册表单字段
const (
	FieldFullName        = "fullName"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

const MinPasswordLength = 8

// ContactSchema 新增紧急联系人表单，relationship 可为空
var ContactSchema = Schema{
	Name: "contact",
	Fields: []Field{
		{Name: FieldName, Label: "Full name", Required: true, Rules: []Rule{Required("Full name")}},
		{Name: FieldRelationship, Label: "Relationship"},
		{Name: FieldPhone, Label: "Phone number", Required: true, Rules: []Rule{Required("Phone number"), ContactPhone()}},
	},
}

// SignUpSchema 注册表单；密码长度和确认密码分别校验，互不影响
var SignUpSchema = Schema{
	Name: "signup",
	Fields: []Field{
		{Name: FieldFullName, Label: "Full name", Required: true, Rules: []Rule{Required("Full name")}},
		{Name: FieldEmail, Label: "Email", Required: true, Rules: []Rule{Required("Email"), Email()}},
		{Name: FieldPhone, Label: "Phone number", Required: true, Rules: []Rule{Required("Phone number"), Phone()}},
		{Name: FieldPassword, Label: "Password", Required: true, Rules: []Rule{Present("Password"), MinLength("Password", MinPasswordLength)}},
		{
			Name:     FieldConfirmPassword,
			Label:    "Confirm password",
			Required: true,
			Rules:    []Rule{PresentMessage("Please confirm your password"), MatchesField(FieldPassword)},
		},
	},
}
