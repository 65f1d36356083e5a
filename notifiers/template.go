package notifiers

import (
	"strings"

	"notify-center-api/utils"
)

// Slots of the global mail template. The PNC_ prefix keeps them from
// colliding with trigger environment variables.
const (
	templateTitleVar    = "PNC_TITLE"
	templateBodyVar     = "PNC_BODY"
	templateTagsVar     = "PNC_TAGS"
	templateRulesURLVar = "PNC_RULESURL"
)

// DefaultTemplateHTML is the global HTML mail template. Rules flagged with
// use_global_template get their rendered body wrapped into it.
const DefaultTemplateHTML = `<!DOCTYPE html>
<html>
	<head>
		<meta http-equiv="Content-Type" content="text/html; charset=UTF-8" />
		<title>Notify Center</title>
		<meta name="viewport" content="width=device-width, initial-scale=1.0"/>
	</head>
	<body style="margin: 0; padding: 0; font-family: Arial, Helvetica, sans-serif">
		<table align="center" cellpadding="0" cellspacing="0" width="600">
			<tr>
				<td align="center" bgcolor="#ae8aed" style="padding: 30px 0 20px 0; color: #ffffff;">
					<h1 style="margin: 0;">%PNC_TITLE%</h1>
				</td>
			</tr>
			<tr>
				<td bgcolor="#ffffff" style="padding: 30px;">
					%PNC_BODY%
				</td>
			</tr>
			<tr>
				<td bgcolor="#eeeeee" style="padding: 15px 30px; font-size: 12px; color: #666666;">
					<span>%PNC_TAGS%</span><br/>
					<a href="%PNC_RULESURL%" style="color: #666666;">Manage notification rules</a>
				</td>
			</tr>
		</table>
	</body>
</html>`

// ApplyGlobalTemplate wraps a rendered message into the global HTML
// template. rulesURL points at the rules page of the admin console.
func ApplyGlobalTemplate(msg *Message, rulesURL string) *Message {
	body := utils.ReplaceVars(DefaultTemplateHTML, map[string]string{
		templateTitleVar:    msg.Title,
		templateBodyVar:     msg.Body,
		templateTagsVar:     strings.Join(msg.Tags, ", "),
		templateRulesURLVar: rulesURL,
	})
	return &Message{
		Title: msg.Title,
		Body:  body,
		Tags:  msg.Tags,
		HTML:  true,
	}
}
