package mail

const otpBodyTemplate = `<p>Hello %s,</p>
<p>Your email verification code is:</p>
<h2>%s</h2>
<p>This code will expire in 15 minutes.</p>
<p>If you did not create an account, please ignore this email.</p>
<p><small>This is an automatically generated email. Please do not reply.</small></p>`

const welcomeBodyTemplate = `<p>Hello %s,</p>
<p>Your email has been verified and your account is ready to use.</p>
<p>Start by creating a few categories and setting monthly budgets for them.</p>
<p><small>This is an automatically generated email. Please do not reply.</small></p>`

const resetBodyTemplate = `<p>Hello %s,</p>
<p>Click the link below to reset your password:</p>
<a href="%s" style="display: inline-block; padding: 10px 20px; background-color: #007BFF; color: #fff; text-decoration: none; border-radius: 5px;">Reset Password</a>
<p>This link will expire in 1 hour.</p>
<p>If you did not request a password reset, please ignore this email.</p>
<p><small>This is an automatically generated email. Please do not reply.</small></p>`
