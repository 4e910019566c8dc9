package email

const templates = `
{{define "layout_start"}}<!DOCTYPE html>
<html><body style="font-family: Arial, sans-serif; color: #1f2937; max-width: 560px; margin: 0 auto;">
<h1 style="color: #b45309;">Star Club</h1>{{end}}

{{define "layout_end"}}<p style="font-size: 12px; color: #6b7280;">&copy; {{.Year}} Star Club. All rights reserved.</p>
</body></html>{{end}}

{{define "welcome"}}{{template "layout_start" .}}
<p>Hi {{.FullName}},</p>
<p>Welcome to Star Club! Every restaurant visit now earns you stars. Collect 10 stars to reach Silver,
25 for Gold and 50 for Platinum.</p>
<p><a href="{{.FrontendURL}}/dashboard">Open your dashboard</a></p>
{{template "layout_end" .}}{{end}}

{{define "tier_upgrade"}}{{template "layout_start" .}}
<p>Congratulations {{.FullName}}!</p>
<p>With {{.TotalStars}} stars you are now a <strong>{{.Tier}}</strong> member.</p>
<p><a href="{{.FrontendURL}}/rewards">See the rewards you unlocked</a></p>
{{template "layout_end" .}}{{end}}
`
